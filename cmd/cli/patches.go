package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sevigo/a11y-warden/internal/core"
	"github.com/sevigo/a11y-warden/internal/gitutil"
)

var errNoInput = errors.New("no input: pass files as arguments or use --repo")

// collectPatches builds the patch batch from --repo or from file arguments.
func collectPatches(ctx context.Context, repo string, files []string) ([]core.Patch, error) {
	if repo != "" {
		if len(files) > 0 {
			return nil, errors.New("--repo cannot be combined with file arguments")
		}
		return gitutil.NewClient(nil).HeadPatches(ctx, repo)
	}
	if len(files) == 0 {
		return nil, errNoInput
	}
	return readFilePatches(files)
}

// readFilePatches turns whole files into patches, named by their slash-separated path.
func readFilePatches(files []string) ([]core.Patch, error) {
	patches := make([]core.Patch, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		patches = append(patches, core.Patch{
			Filename: filepath.ToSlash(filepath.Clean(name)),
			Content:  string(data),
		})
	}
	return patches, nil
}

func selectedProfile() core.Profile {
	if generalMode {
		return core.ProfileGeneral
	}
	return core.ProfileAccessibility
}
