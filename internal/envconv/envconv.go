// Package envconv converts YAML environment files (conda-style
// environment.yml or a plain package list) into a requirements.txt style
// list with one dependency per line.
package envconv

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is the output path used when none is given.
const DefaultOutput = "requirements.txt"

// Recognized top-level keys, in lookup order.
const (
	KeyDependencies = "dependencies"
	KeyPackages     = "packages"
)

// excludedPrefix marks interpreter pins in a conda dependency list.
const excludedPrefix = "python"

var (
	// ErrNotMapping is returned when the document's top level is not a mapping.
	ErrNotMapping = errors.New("envconv: top-level YAML value is not a mapping")

	// ErrNotSequence is returned when a recognized key holds a non-list value.
	ErrNotSequence = errors.New("envconv: dependency key does not hold a list")
)

// Convert reads the YAML file at inputPath and writes the extracted
// dependencies to outputPath, one per line, replacing any existing file.
//
// Read and parse errors keep their cause, so errors.Is(err, fs.ErrNotExist)
// holds for a missing input.
func Convert(inputPath, outputPath string) ([]string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", inputPath, err)
	}

	deps, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, []byte(Format(deps)), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", outputPath, err)
	}

	return deps, nil
}

// Extract returns the dependency list of a YAML document.
//
// If the top-level key "dependencies" is present, its string entries are
// kept unless they start with "python", and spaces inside each entry are
// removed ("numpy >= 1.2" becomes "numpy>=1.2"). Otherwise, if "packages" is
// present, its string entries are kept verbatim. Non-string entries, such as
// conda's nested "- pip: [...]" mapping, are skipped. A document with neither
// key yields an empty list, and so does a key whose value is null
// ("dependencies:" with nothing after it).
func Extract(doc []byte) ([]string, error) {
	var root any
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, err
	}

	top, err := asMapping(root)
	if err != nil {
		return nil, err
	}

	if raw, ok := top[KeyDependencies]; ok {
		entries, err := asSequence(raw, KeyDependencies)
		if err != nil {
			return nil, err
		}
		deps := make([]string, 0, len(entries))
		for _, e := range entries {
			s, ok := e.(string)
			if !ok || strings.HasPrefix(s, excludedPrefix) {
				continue
			}
			deps = append(deps, strings.ReplaceAll(s, " ", ""))
		}
		return deps, nil
	}

	if raw, ok := top[KeyPackages]; ok {
		entries, err := asSequence(raw, KeyPackages)
		if err != nil {
			return nil, err
		}
		deps := make([]string, 0, len(entries))
		for _, e := range entries {
			if s, ok := e.(string); ok {
				deps = append(deps, s)
			}
		}
		return deps, nil
	}

	return []string{}, nil
}

// Format renders deps as newline-terminated lines.
func Format(deps []string) string {
	var sb strings.Builder
	for _, d := range deps {
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func asMapping(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, nil
	default:
		return nil, ErrNotMapping
	}
}

func asSequence(v any, key string) ([]any, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q is %T", ErrNotSequence, key, v)
	}
}
