package geom

import (
	"fmt"
	"strings"
)

// ParseShape detects the format of pasted text (GeoJSON, CSV with an x/y
// header, or WKT) and parses a single shape from it.
func ParseShape(text string) (Shape, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Shape{}, fmt.Errorf("paste: %w", ErrEmpty)
	}
	switch {
	case strings.HasPrefix(s, "{"):
		return ParseGeoJSON([]byte(s))
	case looksLikeCSV(s):
		pts, err := ReadCSV(strings.NewReader(s))
		if err != nil {
			return Shape{}, err
		}
		return Shape{Points: pts}, nil
	default:
		return ParseWKT(s)
	}
}

func looksLikeCSV(s string) bool {
	first, _, _ := strings.Cut(s, "\n")
	first = strings.ToLower(first)
	return strings.Contains(first, ",") && !strings.Contains(first, "(") &&
		(strings.Contains(first, "x") || strings.Contains(first, "col"))
}
