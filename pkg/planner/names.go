package planner

import (
	"path/filepath"
	"strings"
)

// splitExt splits a file name into stem and extension (with its dot).
// Leading-dot names have no extension.
func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// keepExtension returns a composer that appends ext to answers that do not
// already end with it.
func keepExtension(ext string) func(string) string {
	return func(base string) string {
		if ext == "" || strings.HasSuffix(strings.ToLower(base), strings.ToLower(ext)) {
			return base
		}
		return base + ext
	}
}

// sequentialName returns a composer building "<base> - <seq><ext>". seq is
// read at call time so re-anchoring is picked up. A typed answer ending with
// ext has it dropped first; stem itself is used as is.
func sequentialName(seq func() string, stem, ext string) func(string) string {
	return func(base string) string {
		if base != stem && ext != "" && strings.HasSuffix(strings.ToLower(base), strings.ToLower(ext)) {
			base = base[:len(base)-len(ext)]
		}
		return base + " - " + seq() + ext
	}
}
