// Package imageset decodes and encodes the image-path list stored on a
// review. The stored value is normally a JSON array of URL strings, but
// legacy rows may hold a comma-separated string, and either form may be
// empty. Parse makes the three outcomes explicit so callers and tests can
// tell which branch produced the result.
package imageset

import (
	"encoding/json"
	"strings"
)

// Source tags which decoding branch produced the image list.
type Source int

const (
	// SourceJSON means the stored value was a well-formed JSON list.
	SourceJSON Source = iota
	// SourceCSV means JSON decoding failed and the value was comma-split.
	SourceCSV
	// SourcePlaceholder means nothing usable was stored and the
	// placeholder was substituted.
	SourcePlaceholder
)

// Parse decodes a stored image-path value. The returned list is never
// empty: when no usable entry is found the placeholder is substituted and
// the result is tagged SourcePlaceholder.
func Parse(raw, placeholder string) ([]string, Source) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{placeholder}, SourcePlaceholder
	}

	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err == nil {
		paths = compact(paths)
		if len(paths) == 0 {
			return []string{placeholder}, SourcePlaceholder
		}
		return paths, SourceJSON
	}

	// A bare JSON string is still valid storage for a single image.
	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if s := strings.TrimSpace(single); s != "" {
			return []string{s}, SourceJSON
		}
		return []string{placeholder}, SourcePlaceholder
	}

	paths = compact(strings.Split(raw, ","))
	if len(paths) == 0 {
		return []string{placeholder}, SourcePlaceholder
	}
	return paths, SourceCSV
}

// Encode serializes an image list for storage. Empty input encodes the
// placeholder so a review always renders at least one image.
func Encode(paths []string, placeholder string) (string, error) {
	paths = compact(paths)
	if len(paths) == 0 {
		paths = []string{placeholder}
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
