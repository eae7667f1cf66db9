package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
)

// HistoryPanel lists the undo history with undo and redo buttons.
type HistoryPanel struct {
	panels *Panels
}

func NewHistoryPanel(panels *Panels) *HistoryPanel {
	return &HistoryPanel{panels: panels}
}

func (hp *HistoryPanel) Render() {
	sess := hp.panels.sess
	h := sess.History()
	if !imgui.BeginV("History", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.Button("Undo") && h.CanUndo() {
		hp.panels.Report(sess.Undo())
	}
	imgui.SameLine()
	if imgui.Button("Redo") && h.CanRedo() {
		hp.panels.Report(sess.Redo())
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("%d / %d", h.Len(), h.Capacity()))

	if msg := hp.panels.LastError(); msg != "" {
		imgui.Text("Error: " + msg)
	}
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("HistoryTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Command")
		imgui.TableHeadersRow()

		for i, entry := range h.Entries() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", i))
			imgui.TableNextColumn()
			label := entry.Description
			if i == h.Cursor() {
				label = "> " + label
			} else if !entry.Applied {
				label = "  (" + label + ")"
			}
			imgui.Text(label)
		}

		imgui.EndTable()
	}

	imgui.End()
}
