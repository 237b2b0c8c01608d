package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"polytrace/internal/geom"
)

type exportedMsg struct {
	path string
	err  error
}

// exportFormat picks the writer from the file extension.
func exportFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg", nil
	case ".wkt":
		return "wkt", nil
	case ".geojson", ".json":
		return "geojson", nil
	case ".csv":
		return "csv", nil
	}
	return "", fmt.Errorf("%s: %w", filepath.Base(path), geom.ErrUnsupported)
}

func encodeAnnotation(w io.Writer, format string, a geom.Annotation) error {
	switch format {
	case "svg":
		return geom.WriteSVG(w, a)
	case "wkt":
		_, err := fmt.Fprintln(w, geom.FormatWKT(a.Points, a.Closed))
		return err
	case "geojson":
		return geom.WriteGeoJSON(w, a)
	case "csv":
		return geom.WriteCSV(w, a.Points)
	}
	return fmt.Errorf("export format %q: %w", format, geom.ErrUnsupported)
}

func writeAnnotation(path string, a geom.Annotation) error {
	format, err := exportFormat(path)
	if err != nil {
		return err
	}
	a.Image = relativeTo(filepath.Dir(path), a.Image)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := encodeAnnotation(bw, format, a); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// relativeTo rewrites target relative to dir when both resolve.
func relativeTo(dir, target string) string {
	if target == "" {
		return ""
	}
	ad, err1 := filepath.Abs(dir)
	at, err2 := filepath.Abs(target)
	if err1 != nil || err2 != nil {
		return target
	}
	rel, err := filepath.Rel(ad, at)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

func exportCmd(path string, a geom.Annotation) tea.Cmd {
	return func() tea.Msg {
		return exportedMsg{path: path, err: writeAnnotation(path, a)}
	}
}

// annotation snapshots the current polygon for export.
func (m Model) annotation() geom.Annotation {
	poly := m.ed.Polygon()
	a := geom.Annotation{Size: m.ed.Image(), Points: poly.Points, Closed: poly.Closed}
	if m.img != nil {
		a.Image = m.img.Path
	}
	return a
}

// defaultExportPath names the export after the image, with the configured
// format's extension.
func (m Model) defaultExportPath() string {
	base := "polygon"
	if m.img != nil && m.img.Path != "" {
		base = strings.TrimSuffix(m.img.Path, filepath.Ext(m.img.Path))
	}
	return base + "." + m.cfg.ExportFormat
}
