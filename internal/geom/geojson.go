package geom

import (
	"encoding/json"
	"fmt"
	"io"
)

// ParseGeoJSON returns the first Polygon (outer ring), LineString or
// MultiPoint found in a FeatureCollection, Feature or bare geometry.
func ParseGeoJSON(data []byte) (Shape, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Shape{}, fmt.Errorf("geojson: %w", err)
	}
	parsePoint := func(v any) (Point, bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return Point{X: x, Y: y}, true
			}
		}
		return Point{}, false
	}
	parseArrayPoints := func(v any) []Point {
		arr, _ := v.([]any)
		var pts []Point
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				pts = append(pts, pt)
			}
		}
		return pts
	}
	outerRing := func(v any) []Point {
		if rings, ok := v.([]any); ok && len(rings) > 0 {
			return dropClosingVertex(parseArrayPoints(rings[0]))
		}
		return nil
	}

	var found *Shape
	var walkGeom func(g map[string]any)
	walkGeom = func(g map[string]any) {
		if found != nil {
			return
		}
		gt, _ := g["type"].(string)
		coords := g["coordinates"]
		switch gt {
		case "Polygon":
			pts := outerRing(coords)
			found = &Shape{Points: pts, Closed: len(pts) > 2}
		case "MultiPolygon":
			if polys, ok := coords.([]any); ok && len(polys) > 0 {
				pts := outerRing(polys[0])
				found = &Shape{Points: pts, Closed: len(pts) > 2}
			}
		case "LineString", "MultiPoint":
			found = &Shape{Points: parseArrayPoints(coords)}
		case "Point":
			if pt, ok := parsePoint(coords); ok {
				found = &Shape{Points: []Point{pt}}
			}
		case "GeometryCollection":
			if geoms, ok := g["geometries"].([]any); ok {
				for _, el := range geoms {
					if gm, ok := el.(map[string]any); ok {
						walkGeom(gm)
					}
				}
			}
		}
	}
	switch t, _ := raw["type"].(string); t {
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				if g, ok := fm["geometry"].(map[string]any); ok {
					walkGeom(g)
				}
			}
		}
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	default:
		walkGeom(raw)
	}
	if found == nil || len(found.Points) == 0 {
		return Shape{}, fmt.Errorf("geojson: %w", ErrEmpty)
	}
	return *found, nil
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   geoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geoJSONGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// WriteGeoJSON writes the annotation as a single Feature in image pixel
// coordinates. Closed rings become a Polygon, anything else a LineString.
func WriteGeoJSON(w io.Writer, a Annotation) error {
	coords := make([][2]float64, 0, len(a.Points)+1)
	for _, p := range a.Points {
		coords = append(coords, [2]float64{p.X, p.Y})
	}
	geometry := geoJSONGeometry{Type: "LineString", Coordinates: coords}
	if a.Closed && len(a.Points) > 2 {
		coords = append(coords, coords[0])
		geometry = geoJSONGeometry{Type: "Polygon", Coordinates: [][][2]float64{coords}}
	}
	f := geoJSONFeature{
		Type:     "Feature",
		Geometry: geometry,
		Properties: map[string]any{
			"image":  a.Image,
			"width":  a.Size.Width,
			"height": a.Size.Height,
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("geojson: %w", err)
	}
	return nil
}
