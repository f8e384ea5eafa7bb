package profile

import (
	"strings"

	"github.com/techtonix/compass/internal/tags"
)

// Capture is the quick-start form state: scalar fields plus two tag editors.
type Capture struct {
	Name      string
	Education Education
	Industry  Industry
	Skills    *tags.Editor
	Interests *tags.Editor

	onComplete func(Profile)
}

// NewCapture returns a form with the default selections. onComplete is
// invoked with every submitted Profile and may be nil.
func NewCapture(onComplete func(Profile)) *Capture {
	return &Capture{
		Education:  DefaultEducation,
		Industry:   DefaultIndustry,
		Skills:     &tags.Editor{},
		Interests:  &tags.Editor{},
		onComplete: onComplete,
	}
}

// Submit builds a Profile from the current form state. It never fails:
// a blank name becomes DefaultName and empty tag lists are kept as-is.
// The returned tag slices are snapshots and do not follow later edits.
func (c *Capture) Submit() Profile {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = DefaultName
	}
	p := Profile{
		Name:      name,
		Education: c.Education,
		Industry:  c.Industry,
		Skills:    c.Skills.Values(),
		Interests: c.Interests.Values(),
	}
	if c.onComplete != nil {
		c.onComplete(p)
	}
	return p
}
