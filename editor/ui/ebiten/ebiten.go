// Package ebiten hosts the editor panels in an Ebiten window through the
// Dear ImGui Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/scenedit/editor"
	"github.com/plus3/scenedit/editor/ui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Game implements ebiten.Game around an editor session.
type Game struct {
	sess    *editor.Session
	panels  *ui.Panels
	backend *ImguiBackend
	timer   *ui.FrameTimer
}

func NewGame(sess *editor.Session, panels *ui.Panels, backend *ImguiBackend) *Game {
	return &Game{
		sess:    sess,
		panels:  panels,
		backend: backend,
		timer:   ui.NewFrameTimer(),
	}
}

func (g *Game) Update() error {
	g.backend.BeginFrame()
	g.panels.Render(g.timer.GetDeltaTime())
	g.backend.EndFrame()

	if action := Shortcut(g.panels.Input().WantCaptureKeyboard); action != editor.ActionNone {
		g.panels.Report(g.sess.Perform(action))
	}
	ebiten.SetWindowTitle(g.sess.Title())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	g.sess.Scene().OnViewportResize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Shortcut maps this frame's key presses to an editor action. While ImGui
// owns the keyboard, e.g. in a text field, shortcuts are left to it.
func Shortcut(imguiOwnsKeyboard bool) editor.Action {
	if imguiOwnsKeyboard {
		return editor.ActionNone
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		return editor.ActionRedo
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		return editor.ActionUndo
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		return editor.ActionRedo
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyD):
		return editor.ActionDuplicate
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyN):
		return editor.ActionNewEntity
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		return editor.ActionDelete
	}
	return editor.ActionNone
}
