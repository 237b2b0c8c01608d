package tui

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"polytrace/internal/config"
	"polytrace/internal/editor"
	"polytrace/internal/raster"
)

type Model struct {
	width  int
	height int

	cfg    *config.Config
	logger *slog.Logger

	// editor holds all view and polygon state; the model only adapts
	// terminal events to it
	ed  *editor.Editor
	img *raster.Image

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// export prompt
	exportMode bool
	ti         textinput.Model

	// vertex table
	showVertices bool
	tbl          table.Model

	keys keyMap
	help help.Model

	// pointer is over the canvas
	hovering bool

	anim    *zoomAnim
	animSeq int
}

// New builds the model. A nil cfg uses defaults; a nil logger discards.
func New(cfg *config.Config, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		cfg:         cfg,
		logger:      logger,
		ed:          editor.New(logger.With("component", "editor"), cfg),
		helpVisible: cfg.ShowHelp,
		status:      "polytrace ready",
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Images"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a polygon as WKT, GeoJSON or x,y CSV. Press Enter to import; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// export prompt
	m.ti = textinput.New()
	m.ti.Prompt = "export to: "
	m.ti.Placeholder = "polygon.svg"
	m.ti.CharLimit = 0
	m.tbl = table.New(table.WithColumns(vertexColumns), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads an image at launch.
func NewWithPath(path string, cfg *config.Config, logger *slog.Logger) Model {
	m := New(cfg, logger)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Editor exposes the underlying editor.
func (m Model) Editor() *editor.Editor { return m.ed }
