package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"polytrace/internal/raster"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !raster.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no images in current directory"
	}
}

// loadPath decodes an image and hands its dimensions to the editor.
func (m *Model) loadPath(p string) {
	img, err := raster.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.logger.Error("load image", "path", p, "err", err)
		return
	}
	m.setImage(img)
}

func (m *Model) setImage(img *raster.Image) {
	m.stopZoom()
	m.img = img
	m.selPath = img.Path
	m.ed.LoadImage(img.Size)
	m.refreshVertices()
	name := filepath.Base(img.Path)
	if img.Path == "" {
		name = "<memory>"
	}
	m.status = "loaded: " + name + fmt.Sprintf("  %dx%d %s", img.Size.Width, img.Size.Height, img.Format)
}
