package geom

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads vertices from a CSV with x/y columns.
// Column detection: x|col|column and y|row (case-insensitive).
func ReadCSV(r io.Reader) ([]Point, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("csv: %w", ErrEmpty)
	}
	header := recs[0]
	idxX, idxY := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "col", "column":
			if idxX == -1 {
				idxX = i
			}
		case "y", "row":
			if idxY == -1 {
				idxY = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return nil, fmt.Errorf("csv: x/y columns not found")
	}
	var points []Point
	for _, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("csv: %w", ErrEmpty)
	}
	return points, nil
}

// WriteCSV writes one "x,y" row per vertex after a header row.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	for _, p := range points {
		rec := []string{
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	return nil
}
