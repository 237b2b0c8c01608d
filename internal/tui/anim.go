package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"polytrace/internal/geom"
	"polytrace/internal/view"
)

const frameInterval = time.Second / 60

// zoomAnim tweens the scale toward a target. Every frame goes through the
// anchor-preserving zoom, so the anchor stays put for the whole animation.
type zoomAnim struct {
	tween  *gween.Tween
	anchor geom.Point
	to     float64
	seq    int
}

type zoomFrameMsg struct{ seq int }

func zoomFrame(seq int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return zoomFrameMsg{seq: seq} })
}

// stepZoom handles a keyboard zoom step. Without smooth zoom the step is
// applied at once. A step during an animation retargets from the pending
// target rather than the current frame.
func (m Model) stepZoom(in bool) (Model, tea.Cmd) {
	if !m.ed.HasImage() {
		return m, nil
	}
	if !m.cfg.SmoothZoom {
		if in {
			m.ed.ZoomIn()
		} else {
			m.ed.ZoomOut()
		}
		m.status = zoomStatus(m.ed.Scale())
		return m, nil
	}
	anchor, target := m.ed.ZoomAnchor(), m.ed.StepTarget(in)
	if m.anim != nil {
		anchor = m.anim.anchor
		if in {
			target = view.ClampScale(m.anim.to * m.cfg.ZoomStep)
		} else {
			target = view.ClampScale(m.anim.to / m.cfg.ZoomStep)
		}
	}
	m.animSeq++
	d := float32(m.cfg.SmoothZoomMS) / 1000
	m.anim = &zoomAnim{
		tween:  gween.New(float32(m.ed.Scale()), float32(target), d, ease.OutQuad),
		anchor: anchor,
		to:     target,
		seq:    m.animSeq,
	}
	m.status = zoomStatus(target)
	return m, zoomFrame(m.animSeq)
}

func (m Model) advanceZoom(msg zoomFrameMsg) (Model, tea.Cmd) {
	if m.anim == nil || msg.seq != m.anim.seq {
		return m, nil
	}
	k, done := m.anim.tween.Update(float32(frameInterval.Seconds()))
	if done {
		m.ed.ZoomTo(m.anim.anchor, m.anim.to)
		m.anim = nil
		return m, nil
	}
	m.ed.ZoomTo(m.anim.anchor, float64(k))
	return m, zoomFrame(msg.seq)
}

// stopZoom drops any running animation; its pending frames are ignored.
func (m *Model) stopZoom() { m.anim = nil }
