package prompt

import "strings"

// Section names, in the order they appear in the accessibility prompt.
const (
	SectionTaskContext      = "task_context"
	SectionToneContext      = "tone_context"
	SectionPatches          = "patches"
	SectionReference        = "reference"
	SectionTaskDescription  = "task_description"
	SectionImmediateTask    = "immediate_task"
	SectionPrecognition     = "precognition"
	SectionOutputFormatting = "output_formatting"
	SectionPrefill          = "prefill"

	SectionQuestion = "question"
)

// DefaultAccessibilityQuestion is used when the caller supplies no question.
const DefaultAccessibilityQuestion = "Provide a comprehensive accessibility review."

// Input is the per-request data a section may render.
type Input struct {
	Batch    string // output of FormatBatch
	Question string // optional caller question
}

// Section is one named, independently renderable block of a prompt.
// A section that renders to an empty string is left out of the prompt.
type Section struct {
	Name   string
	Render func(in Input) string
}

// AccessibilitySections returns the ordered section list for accessibility reviews.
func AccessibilitySections(ref Reference) []Section {
	return []Section{
		{Name: SectionTaskContext, Render: static(ref.TaskContext)},
		{Name: SectionToneContext, Render: static(ref.ToneContext)},
		{Name: SectionPatches, Render: patchesBlock("Here are the git patches to analyze for accessibility:\n\n")},
		{Name: SectionReference, Render: referenceBlock(ref)},
		{Name: SectionTaskDescription, Render: taskDescriptionBlock(ref.TaskDescription)},
		{Name: SectionImmediateTask, Render: static(ref.ImmediateTask)},
		{Name: SectionPrecognition, Render: static(ref.Precognition)},
		{Name: SectionOutputFormatting, Render: static(ref.OutputFormatting)},
		{Name: SectionPrefill, Render: static(ref.Prefill)},
	}
}

// GeneralSections returns the ordered section list for free-form patch questions.
func GeneralSections() []Section {
	return []Section{
		{Name: SectionPatches, Render: patchesBlock("Here are the git patches to analyze:\n\n")},
		{Name: SectionQuestion, Render: func(in Input) string {
			if in.Question == "" {
				return ""
			}
			return "\nQuestion/Request: " + in.Question
		}},
	}
}

func static(text string) func(Input) string {
	return func(Input) string { return text }
}

func patchesBlock(header string) func(Input) string {
	return func(in Input) string {
		return header + in.Batch
	}
}

// referenceBlock renders the accessibility reference material as tagged blocks.
func referenceBlock(ref Reference) func(Input) string {
	return func(Input) string {
		var b strings.Builder
		writeTagged(&b, "wcag_criteria", ref.Criteria)
		writeTagged(&b, "themes", ref.Themes)
		writeTagged(&b, "component_guidance", ref.Supplemental)
		return strings.TrimSuffix(b.String(), "\n")
	}
}

func writeTagged(b *strings.Builder, tag, body string) {
	if body == "" {
		return
	}
	b.WriteString("<" + tag + ">\n")
	b.WriteString(body)
	b.WriteString("\n</" + tag + ">\n")
}

func taskDescriptionBlock(description string) func(Input) string {
	return func(in Input) string {
		question := in.Question
		if question == "" {
			question = DefaultAccessibilityQuestion
		}
		if description == "" {
			return "Additional question/request: " + question
		}
		return description + "\n\nAdditional question/request: " + question
	}
}
