package ui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/scenedit/editor"
	"github.com/plus3/scenedit/scene"
)

// HierarchyRow is one visible line of the scene tree.
type HierarchyRow struct {
	ID    scene.UUID
	Name  string
	Depth int
}

// HierarchyRows flattens the scene tree depth first. With a filter, only
// entities whose name contains it (case-insensitively) are listed, flat.
func HierarchyRows(s *scene.Scene, filter string) []HierarchyRow {
	if filter != "" {
		filter = strings.ToLower(filter)
		var rows []HierarchyRow
		for _, e := range s.Entities() {
			name := s.TagName(e)
			if strings.Contains(strings.ToLower(name), filter) {
				rows = append(rows, HierarchyRow{ID: e.UUID(), Name: name})
			}
		}
		return rows
	}

	var rows []HierarchyRow
	var walk func(e scene.Entity, depth int)
	walk = func(e scene.Entity, depth int) {
		rows = append(rows, HierarchyRow{ID: e.UUID(), Name: s.TagName(e), Depth: depth})
		for _, child := range s.Children(e) {
			walk(child, depth+1)
		}
	}
	for _, root := range s.Roots() {
		walk(root, 0)
	}
	return rows
}

// HierarchyPanel lists the scene tree and hosts entity lifecycle buttons.
type HierarchyPanel struct {
	panels     *Panels
	filterText string
}

func NewHierarchyPanel(panels *Panels) *HierarchyPanel {
	return &HierarchyPanel{panels: panels}
}

func (hp *HierarchyPanel) Render() {
	sess := hp.panels.sess
	if !imgui.BeginV("Scene Hierarchy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(sess.Title())
	imgui.InputTextWithHint("##search", "Search...", &hp.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		hp.filterText = ""
	}

	if imgui.Button("Create Entity") {
		hp.panels.Report(sess.Perform(editor.ActionNewEntity))
	}
	selected, hasSelection := sess.Selected()
	if hasSelection {
		imgui.SameLine()
		if imgui.Button("Create Child") {
			_, err := sess.CreateChild(selected.UUID(), "")
			hp.panels.Report(err)
		}
		imgui.SameLine()
		if imgui.Button("Duplicate") {
			hp.panels.Report(sess.Perform(editor.ActionDuplicate))
		}
		imgui.SameLine()
		if imgui.Button("Delete") {
			hp.panels.Report(sess.Perform(editor.ActionDelete))
		}
	}
	imgui.Separator()

	for _, row := range HierarchyRows(sess.Scene(), hp.filterText) {
		label := fmt.Sprintf("%s%s##%s", strings.Repeat("    ", row.Depth), row.Name, row.ID)
		isSelected := hasSelection && selected.UUID() == row.ID
		if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			sess.Select(row.ID)
		}
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Total: %d entities", sess.Scene().Len()))
	imgui.End()
}
