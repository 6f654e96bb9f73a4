package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sevigo/a11y-warden/internal/core"
)

const patchSeparator = "---\n"

// FormatPatch renders one patch as a file block terminated by the separator.
func FormatPatch(p core.Patch) (string, error) {
	if p.Content == "" || p.Filename == "" {
		return "", core.NewValidationError("patches", "Each patch must have content and filename")
	}
	return "File: " + p.Filename + "\n" + p.Content + "\n" + patchSeparator, nil
}

// FormatBatch renders every patch in input order joined by a newline.
// The first invalid patch aborts formatting; no partial output is returned.
func FormatBatch(patches []core.Patch) (string, error) {
	blocks := make([]string, 0, len(patches))
	for i, p := range patches {
		block, err := FormatPatch(p)
		if err != nil {
			var ve *core.ValidationError
			if errors.As(err, &ve) {
				ve.Field = fmt.Sprintf("patches[%d]", i)
			}
			return "", err
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n"), nil
}
