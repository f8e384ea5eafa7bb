package recommend

import "github.com/techtonix/compass/internal/profile"

// DefaultLimit is the number of items requested per fetch.
const DefaultLimit = 36

// Platform is the provider label of an Item. Values outside the known set
// are kept verbatim and classify as KindOther.
type Platform string

const (
	Coursera   Platform = "Coursera"
	Udemy      Platform = "Udemy"
	Skillshare Platform = "Skillshare"
	Udacity    Platform = "Udacity"
	EdX        Platform = "EdX"
)

// PlatformKind is the closed classification of a Platform label.
type PlatformKind int

const (
	KindOther PlatformKind = iota
	KindCoursera
	KindUdemy
	KindSkillshare
	KindUdacity
	KindEdX
)

// Kind classifies p. Matching is exact and case-sensitive.
func (p Platform) Kind() PlatformKind {
	switch p {
	case Coursera:
		return KindCoursera
	case Udemy:
		return KindUdemy
	case Skillshare:
		return KindSkillshare
	case Udacity:
		return KindUdacity
	case EdX:
		return KindEdX
	}
	return KindOther
}

// Known reports whether p is one of the anticipated platforms.
func (p Platform) Known() bool { return p.Kind() != KindOther }

// FilterPlatforms are the platforms offered for filtering, in display order.
func FilterPlatforms() []Platform {
	return []Platform{Coursera, Udemy, Skillshare, Udacity}
}

// Item is one learning resource returned by the backend. Items are read-only.
type Item struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
}

// DisplayTitle falls back to the URL for untitled items.
func (it Item) DisplayTitle() string {
	if it.Title != "" {
		return it.Title
	}
	return it.URL
}

// Query is the smart-search request body.
type Query struct {
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Industry  string   `json:"industry"`
	Limit     int      `json:"limit"`
}

// QueryFor builds the request for p with DefaultLimit.
func QueryFor(p profile.Profile) Query {
	return Query{
		Skills:    p.Skills,
		Interests: p.Interests,
		Industry:  p.Industry.String(),
		Limit:     DefaultLimit,
	}
}
