// Package prompt assembles the review prompt sent to the completion service.
//
// A prompt is an ordered list of named sections. Each section renders one
// block of text from the immutable reference data and the per-request input;
// Compose joins the rendered blocks in list order. The order of the lists
// returned by AccessibilitySections and GeneralSections is part of the
// contract with the model and is pinned by tests.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	//go:embed references/task_context.md
	taskContext string
	//go:embed references/tone_context.md
	toneContext string
	//go:embed references/criteria.md
	criteria string
	//go:embed references/themes.md
	themes string
	//go:embed references/supplemental.md
	supplemental string
	//go:embed references/task_description.md
	taskDescription string
	//go:embed references/immediate_task.md
	immediateTask string
	//go:embed references/precognition.md
	precognition string
	//go:embed references/output_formatting.md
	outputFormatting string
	//go:embed references/prefill.md
	prefill string
	//go:embed references/system_accessibility.md
	accessibilitySystem string
)

// ErrSectionsParsing is returned when an override file exists but cannot be decoded.
var ErrSectionsParsing = errors.New("prompt sections parsing failed")

// Reference holds the static text blocks a prompt is built from.
// The yaml keys double as the override file format.
type Reference struct {
	TaskContext         string `yaml:"task_context"`
	ToneContext         string `yaml:"tone_context"`
	Criteria            string `yaml:"criteria"`
	Themes              string `yaml:"themes"`
	Supplemental        string `yaml:"supplemental"`
	TaskDescription     string `yaml:"task_description"`
	ImmediateTask       string `yaml:"immediate_task"`
	Precognition        string `yaml:"precognition"`
	OutputFormatting    string `yaml:"output_formatting"`
	Prefill             string `yaml:"prefill"`
	AccessibilitySystem string `yaml:"accessibility_system"`
}

// DefaultReference returns the reference data compiled into the binary.
func DefaultReference() Reference {
	return Reference{
		TaskContext:         strings.TrimSpace(taskContext),
		ToneContext:         strings.TrimSpace(toneContext),
		Criteria:            strings.TrimSpace(criteria),
		Themes:              strings.TrimSpace(themes),
		Supplemental:        strings.TrimSpace(supplemental),
		TaskDescription:     strings.TrimSpace(taskDescription),
		ImmediateTask:       strings.TrimSpace(immediateTask),
		Precognition:        strings.TrimSpace(precognition),
		OutputFormatting:    strings.TrimSpace(outputFormatting),
		Prefill:             strings.TrimSpace(prefill),
		AccessibilitySystem: strings.TrimSpace(accessibilitySystem),
	}
}

// Source records where a Reference came from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceFile     Source = "file"
)

// LoadResult is the outcome of LoadReference.
type LoadResult struct {
	Reference Reference
	Source    Source
	Path      string
}

// LoadReference reads section overrides from a YAML file on top of the
// embedded defaults. Keys absent from the file keep their default text; a key
// set to an empty string disables that section. An empty path or a missing
// file yields the embedded defaults.
func LoadReference(path string) (*LoadResult, error) {
	ref := DefaultReference()
	if path == "" {
		return &LoadResult{Reference: ref, Source: SourceEmbedded}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Reference: ref, Source: SourceEmbedded, Path: path}, nil
		}
		return nil, fmt.Errorf("failed to read prompt sections file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSectionsParsing, path, err)
	}
	return &LoadResult{Reference: ref, Source: SourceFile, Path: path}, nil
}
