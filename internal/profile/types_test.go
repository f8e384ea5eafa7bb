package profile

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEducationLabels(t *testing.T) {
	all := Educations()
	if len(all) != 10 {
		t.Fatalf("expected 10 education levels, got %d", len(all))
	}
	if all[0].String() != "High School" || all[len(all)-1].String() != "Other" {
		t.Errorf("unexpected ends: %q .. %q", all[0], all[len(all)-1])
	}
	for _, e := range all {
		got, err := ParseEducation(e.String())
		if err != nil {
			t.Errorf("ParseEducation(%q): %v", e, err)
		}
		if got != e {
			t.Errorf("ParseEducation(%q) = %v, want %v", e, got, e)
		}
	}
	if DefaultEducation.String() != "Undergraduate" {
		t.Errorf("DefaultEducation = %q", DefaultEducation)
	}
}

func TestIndustryLabels(t *testing.T) {
	all := Industries()
	if len(all) != 10 {
		t.Fatalf("expected 10 industries, got %d", len(all))
	}
	for _, i := range all {
		got, err := ParseIndustry(i.String())
		if err != nil || got != i {
			t.Errorf("ParseIndustry(%q) = %v, %v", i, got, err)
		}
	}
	if DefaultIndustry.String() != "Software Development" {
		t.Errorf("DefaultIndustry = %q", DefaultIndustry)
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := ParseEducation("undergraduate"); err == nil {
		t.Error("ParseEducation is expected to be case-sensitive")
	}
	if _, err := ParseIndustry("Basket Weaving"); err == nil {
		t.Error("ParseIndustry accepted an unknown label")
	}
}

func TestEnumJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		E Education `json:"e"`
		I Industry  `json:"i"`
	}{PhD, DataScience})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"e":"PhD","i":"Data Science"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	if _, err := json.Marshal(Education(42)); err == nil {
		t.Error("expected error marshalling out-of-range Education")
	}

	var e Education
	if err := json.Unmarshal([]byte(`"Self-taught"`), &e); err != nil || e != SelfTaught {
		t.Errorf("Unmarshal Self-taught = %v, %v", e, err)
	}
	if err := json.Unmarshal([]byte(`"Wizard"`), &e); err == nil {
		t.Error("expected error for unknown education")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Profile
		wantErr bool
	}{
		{"ok", Profile{Name: "Ana", Skills: []string{"Go"}}, false},
		{"empty lists", Profile{Name: "Ana"}, false},
		{"empty name", Profile{}, true},
		{"duplicate skill", Profile{Name: "Ana", Skills: []string{"Go", "Go"}}, true},
		{"empty interest", Profile{Name: "Ana", Interests: []string{""}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr && !errors.Is(err, ErrMalformed) {
				t.Errorf("Validate() = %v, want ErrMalformed", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
