package geom

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteSVG writes the annotation as an SVG document. The canvas is sized
// with Extent so vertices traced outside the image are not cropped; the
// image itself is referenced at the origin at its native size.
func WriteSVG(w io.Writer, a Annotation) error {
	ext := Extent(a.Points, a.Size)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		ext.Width, ext.Height, ext.Width, ext.Height)
	if a.Image != "" {
		var href strings.Builder
		if err := xml.EscapeText(&href, []byte(a.Image)); err != nil {
			return fmt.Errorf("svg: %w", err)
		}
		fmt.Fprintf(bw, `  <image href="%s" x="0" y="0" width="%d" height="%d"/>`+"\n",
			href.String(), a.Size.Width, a.Size.Height)
	}
	if len(a.Points) > 0 {
		pts := make([]string, len(a.Points))
		for i, p := range a.Points {
			pts[i] = strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
		}
		elem, fill := "polyline", "none"
		if a.Closed && len(a.Points) > 2 {
			elem, fill = "polygon", "rgba(124,58,237,0.25)"
		}
		fmt.Fprintf(bw, `  <%s points="%s" fill="%s" stroke="#7C3AED" stroke-width="2"/>`+"\n",
			elem, strings.Join(pts, " "), fill)
	}
	fmt.Fprintln(bw, "</svg>")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	return nil
}
