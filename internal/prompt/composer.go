package prompt

import (
	"strings"

	"github.com/sevigo/a11y-warden/internal/core"
)

// Compose renders the sections in order and joins the non-empty blocks
// with a newline. The result depends only on its arguments.
func Compose(sections []Section, in Input) string {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		if text := s.Render(in); text != "" {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n")
}

// Composer builds prompts for a review profile from fixed reference data.
type Composer struct {
	ref           Reference
	accessibility []Section
	general       []Section
}

// NewComposer creates a Composer over the given reference data.
func NewComposer(ref Reference) *Composer {
	return &Composer{
		ref:           ref,
		accessibility: AccessibilitySections(ref),
		general:       GeneralSections(),
	}
}

// Sections returns the ordered section list used for the profile.
func (c *Composer) Sections(profile core.Profile) []Section {
	if profile == core.ProfileAccessibility {
		return c.accessibility
	}
	return c.general
}

// Build formats the patch batch and composes the prompt for the profile.
// An invalid patch fails the whole build.
func (c *Composer) Build(profile core.Profile, patches []core.Patch, question string) (string, error) {
	batch, err := FormatBatch(patches)
	if err != nil {
		return "", err
	}
	return Compose(c.Sections(profile), Input{Batch: batch, Question: question}), nil
}

// AccessibilitySystem returns the system prompt forced on accessibility reviews.
func (c *Composer) AccessibilitySystem() string {
	return c.ref.AccessibilitySystem
}
