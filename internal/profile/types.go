package profile

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultName replaces a blank name on submission.
const DefaultName = "Guest"

// Profile is the user-entered record that drives recommendations.
// Values are immutable once captured: replace a Profile wholesale, never patch it.
type Profile struct {
	Name      string    `json:"name"`
	Education Education `json:"education"`
	Industry  Industry  `json:"industry"`
	Skills    []string  `json:"skills"`
	Interests []string  `json:"interests"`
}

// ErrMalformed marks stored or decoded profile data that cannot be used.
var ErrMalformed = errors.New("malformed profile")

// Validate reports whether p satisfies the Profile invariants.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrMalformed)
	}
	if err := checkTags("skills", p.Skills); err != nil {
		return err
	}
	return checkTags("interests", p.Interests)
}

func checkTags(field string, tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			return fmt.Errorf("%w: empty tag in %s", ErrMalformed, field)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: duplicate tag %q in %s", ErrMalformed, t, field)
		}
		seen[t] = struct{}{}
	}
	return nil
}

func copyProfile(p Profile) Profile {
	cp := p
	cp.Skills = append(make([]string, 0, len(p.Skills)), p.Skills...)
	cp.Interests = append(make([]string, 0, len(p.Interests)), p.Interests...)
	return cp
}

// --- Education ---

// Education is a closed enumeration of education levels.
type Education int

const (
	HighSchool Education = iota
	Diploma
	Undergraduate
	Postgraduate
	PhD
	Bootcamp
	SelfTaught
	WorkingProfessional
	CareerSwitch
	OtherEducation
)

// DefaultEducation is preselected on the capture form.
const DefaultEducation = Undergraduate

var educationNames = [...]string{
	HighSchool:          "High School",
	Diploma:             "Diploma",
	Undergraduate:       "Undergraduate",
	Postgraduate:        "Postgraduate",
	PhD:                 "PhD",
	Bootcamp:            "Bootcamp",
	SelfTaught:          "Self-taught",
	WorkingProfessional: "Working Professional",
	CareerSwitch:        "Career Switch",
	OtherEducation:      "Other",
}

// Educations returns every Education in display order.
func Educations() []Education {
	out := make([]Education, len(educationNames))
	for i := range educationNames {
		out[i] = Education(i)
	}
	return out
}

func (e Education) String() string {
	if e < 0 || int(e) >= len(educationNames) {
		return fmt.Sprintf("Education(%d)", int(e))
	}
	return educationNames[e]
}

// ParseEducation maps a display label to its Education.
func ParseEducation(s string) (Education, error) {
	for i, name := range educationNames {
		if name == s {
			return Education(i), nil
		}
	}
	return 0, fmt.Errorf("unknown education %q", s)
}

func (e Education) MarshalJSON() ([]byte, error) {
	if e < 0 || int(e) >= len(educationNames) {
		return nil, fmt.Errorf("invalid education %d", int(e))
	}
	return json.Marshal(e.String())
}

func (e *Education) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseEducation(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// --- Industry ---

// Industry is a closed enumeration of target industries.
type Industry int

const (
	SoftwareDevelopment Industry = iota
	DataScience
	Cybersecurity
	CloudDevOps
	ProductManagement
	UIUXDesign
	DigitalMarketing
	BusinessEntrepreneurship
	GameDevelopment
	AIMachineLearning
)

// DefaultIndustry is preselected on the capture form.
const DefaultIndustry = SoftwareDevelopment

var industryNames = [...]string{
	SoftwareDevelopment:      "Software Development",
	DataScience:              "Data Science",
	Cybersecurity:            "Cybersecurity",
	CloudDevOps:              "Cloud & DevOps",
	ProductManagement:        "Product Management",
	UIUXDesign:               "UI/UX Design",
	DigitalMarketing:         "Digital Marketing",
	BusinessEntrepreneurship: "Business & Entrepreneurship",
	GameDevelopment:          "Game Development",
	AIMachineLearning:        "AI & Machine Learning",
}

// Industries returns every Industry in display order.
func Industries() []Industry {
	out := make([]Industry, len(industryNames))
	for i := range industryNames {
		out[i] = Industry(i)
	}
	return out
}

func (i Industry) String() string {
	if i < 0 || int(i) >= len(industryNames) {
		return fmt.Sprintf("Industry(%d)", int(i))
	}
	return industryNames[i]
}

// ParseIndustry maps a display label to its Industry.
func ParseIndustry(s string) (Industry, error) {
	for idx, name := range industryNames {
		if name == s {
			return Industry(idx), nil
		}
	}
	return 0, fmt.Errorf("unknown industry %q", s)
}

func (i Industry) MarshalJSON() ([]byte, error) {
	if i < 0 || int(i) >= len(industryNames) {
		return nil, fmt.Errorf("invalid industry %d", int(i))
	}
	return json.Marshal(i.String())
}

func (i *Industry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseIndustry(s)
	if err != nil {
		return err
	}
	*i = v
	return nil
}
