// Package ui renders the scene editor's Dear ImGui panels. Panels never touch
// the scene directly: every edit is issued as a command through the session,
// so it can be undone.
package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/scenedit/editor"
	"github.com/plus3/scenedit/history"
)

// ImguiItem is an extra window drawn after the built-in panels each frame.
type ImguiItem struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Panels owns every editor window.
type Panels struct {
	sess      *editor.Session
	hierarchy *HierarchyPanel
	inspector *InspectorPanel
	history   *HistoryPanel
	stats     *StatsPanel
	items     []ImguiItem
	input     InputState
	lastError string
}

func NewPanels(sess *editor.Session) *Panels {
	p := &Panels{sess: sess}
	p.hierarchy = NewHierarchyPanel(p)
	p.inspector = NewInspectorPanel(p, NewTextureCache())
	p.history = NewHistoryPanel(p)
	p.stats = NewStatsPanel(p, 120)
	return p
}

// Add registers an extra window.
func (p *Panels) Add(item ImguiItem) {
	p.items = append(p.items, item)
}

// Render draws all panels. It must run between the backend's BeginFrame and EndFrame.
func (p *Panels) Render(deltaTime float32) {
	p.input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	p.input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	p.hierarchy.Render()
	p.inspector.Render()
	p.history.Render()
	p.stats.Render(deltaTime)

	for _, item := range p.items {
		item.Render()
	}
}

// Input returns the capture state sampled by the last Render.
func (p *Panels) Input() InputState {
	return p.input
}

// Do issues cmd through the session and remembers any failure for display.
func (p *Panels) Do(cmd history.Command) {
	p.Report(p.sess.Do(cmd))
}

// Report logs err and shows it in the history panel until the next success.
func (p *Panels) Report(err error) {
	if err == nil {
		p.lastError = ""
		return
	}
	p.lastError = err.Error()
	logger := p.sess.Logger()
	logger.Warn().Err(err).Msg("editor operation failed")
}

// LastError returns the message of the latest failed operation, or "".
func (p *Panels) LastError() string {
	return p.lastError
}
