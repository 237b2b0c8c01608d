package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWKT parses a single shape from WKT.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...), POLYGON((x y, ...))
// Only the outer ring of a polygon is kept; a repeated closing vertex is dropped.
func ParseWKT(wkt string) (Shape, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Shape{}, fmt.Errorf("wkt: %w", ErrEmpty)
	}
	up := strings.ToUpper(s)
	inner := func(open, end string) (string, error) {
		i := strings.Index(s, open)
		j := strings.LastIndex(s, end)
		if i < 0 || j <= i {
			return "", fmt.Errorf("wkt: unbalanced parentheses in %q", firstWord(up))
		}
		return s[i+len(open) : j], nil
	}
	var sh Shape
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		block, err := inner("(", ")")
		if err != nil {
			return Shape{}, err
		}
		// MULTIPOINT((1 2),(3 4)) and MULTIPOINT(1 2, 3 4) are both valid
		block = strings.NewReplacer("(", "", ")", "").Replace(block)
		sh.Points = parseTuples(block)
	case strings.HasPrefix(up, "POINT"):
		block, err := inner("(", ")")
		if err != nil {
			return Shape{}, err
		}
		sh.Points = parseTuples(block)
	case strings.HasPrefix(up, "LINESTRING"):
		block, err := inner("(", ")")
		if err != nil {
			return Shape{}, err
		}
		sh.Points = parseTuples(block)
	case strings.HasPrefix(up, "POLYGON"):
		block, err := inner("((", "))")
		if err != nil {
			return Shape{}, err
		}
		// holes are ignored
		if k := strings.Index(block, ")"); k >= 0 {
			block = block[:k]
		}
		sh.Points = dropClosingVertex(parseTuples(block))
		sh.Closed = len(sh.Points) > 2
	default:
		return Shape{}, fmt.Errorf("wkt %q: %w", firstWord(up), ErrUnsupported)
	}
	if len(sh.Points) == 0 {
		return Shape{}, fmt.Errorf("wkt: %w", ErrEmpty)
	}
	return sh, nil
}

// FormatWKT renders a vertex sequence as WKT: POLYGON for a closed ring
// (first vertex repeated at the end), LINESTRING for an open path and
// POINT for a single vertex.
func FormatWKT(points []Point, closed bool) string {
	switch {
	case len(points) == 0:
		return "LINESTRING EMPTY"
	case len(points) == 1:
		return "POINT (" + formatTuple(points[0]) + ")"
	case closed && len(points) > 2:
		ring := append(append([]Point(nil), points...), points[0])
		return "POLYGON ((" + formatTuples(ring) + "))"
	default:
		return "LINESTRING (" + formatTuples(points) + ")"
	}
}

func parseTuples(block string) []Point {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}

func formatTuple(p Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

func formatTuples(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = formatTuple(p)
	}
	return strings.Join(parts, ", ")
}

func dropClosingVertex(pts []Point) []Point {
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		return pts[:n-1]
	}
	return pts
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " ("); i > 0 {
		return s[:i]
	}
	return s
}
