package ui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/scenedit/command"
	"github.com/plus3/scenedit/history"
	"github.com/plus3/scenedit/scene"
)

var (
	cameraType   = reflect.TypeFor[scene.Camera]()
	spriteType   = reflect.TypeFor[scene.SpriteRenderer]()
	childrenType = reflect.TypeFor[scene.Children]()
	idType       = reflect.TypeFor[scene.IDComponent]()
)

// InspectorPanel edits the selected entity's components. Each widget edit
// becomes a value command; consecutive edits of one widget merge until the
// widget is released.
type InspectorPanel struct {
	panels   *Panels
	textures *TextureCache
}

func NewInspectorPanel(panels *Panels, textures *TextureCache) *InspectorPanel {
	return &InspectorPanel{panels: panels, textures: textures}
}

func (ip *InspectorPanel) Render() {
	sess := ip.panels.sess
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e, ok := sess.Selected()
	if !ok {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	s := sess.Scene()
	imgui.Text(fmt.Sprintf("UUID: %s", e.UUID()))
	imgui.Separator()

	for _, component := range s.Components(e) {
		compType := reflect.TypeOf(component).Elem()
		if compType == idType || compType == childrenType {
			continue
		}
		if !imgui.TreeNodeStr(compType.Name()) {
			continue
		}
		ip.renderComponent(s, e, component, compType)
		if kind, removable := kindOf(compType); removable {
			if imgui.Button("Remove " + kind.Name) {
				ip.panels.Do(kind.Remove(s, e.UUID()))
			}
		}
		imgui.TreePop()
		// Removing a component moves the entity; stop using the stale pointers.
		if s.Component(e, compType) == nil {
			break
		}
	}

	imgui.Separator()
	if imgui.TreeNodeStr("Add Component") {
		for _, kind := range MissingComponents(s, e) {
			if imgui.Button(kind.Name) {
				ip.panels.Do(kind.Add(s, e.UUID()))
			}
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ip *InspectorPanel) renderComponent(s *scene.Scene, e scene.Entity, component any, compType reflect.Type) {
	val := reflect.ValueOf(component).Elem()

	for _, field := range globalReflectionCache.GetFields(compType) {
		fieldVal := val.FieldByIndex(field.Index)
		label := fmt.Sprintf("%s##%s", field.Name, compType.Name())

		switch {
		case compType == cameraType && field.Name == "ProjectionMatrix":
			continue
		case compType == spriteType && field.Name == "Texture":
			imgui.Text(fmt.Sprintf("Texture: %d", fieldVal.Uint()))
		case compType == spriteType && field.Name == "TexturePath":
			path := fieldVal.String()
			if imgui.InputTextWithHint(label, "path/to/texture.png", &path, imgui.InputTextFlagsNone, nil) {
				ip.panels.Do(command.NewChangeTexture(s, command.SpriteTexture(e.UUID()), ip.textures.Load(path), path))
			}
			ip.endEditIfReleased()
		case field.Type == reflect.TypeFor[scene.UUID]():
			imgui.Text(fmt.Sprintf("%s: %s", field.Name, fieldVal.Interface()))
		case field.Type == reflect.TypeFor[mgl32.Vec3]():
			editValue(ip, s, e, compType, field, fieldVal, func(label string, v *mgl32.Vec3) bool {
				return imgui.DragFloat3(label, (*[3]float32)(v))
			})
		case field.Type == reflect.TypeFor[mgl32.Vec4]():
			editValue(ip, s, e, compType, field, fieldVal, func(label string, v *mgl32.Vec4) bool {
				return imgui.ColorEdit4(label, (*[4]float32)(v))
			})
		case field.Type == reflect.TypeFor[mgl32.Vec2]():
			editValue(ip, s, e, compType, field, fieldVal, func(label string, v *mgl32.Vec2) bool {
				return imgui.DragFloat2(label, (*[2]float32)(v))
			})
		case field.Type == reflect.TypeFor[float32]():
			editValue(ip, s, e, compType, field, fieldVal, imgui.InputFloat)
		case field.Type == reflect.TypeFor[bool]():
			editValue(ip, s, e, compType, field, fieldVal, imgui.Checkbox)
		case field.Type == reflect.TypeFor[string]():
			editValue(ip, s, e, compType, field, fieldVal, func(label string, v *string) bool {
				return imgui.InputTextWithHint(label, "", v, imgui.InputTextFlagsNone, nil)
			})
		case field.Type == reflect.TypeFor[scene.ProjectionType]():
			editValue(ip, s, e, compType, field, fieldVal, choice(scene.Perspective, scene.Orthographic))
		case field.Type == reflect.TypeFor[scene.BodyType]():
			editValue(ip, s, e, compType, field, fieldVal, choice(scene.StaticBody, scene.DynamicBody, scene.KinematicBody))
		default:
			imgui.Text(fmt.Sprintf("%s: %v", field.Name, fieldVal.Interface()))
		}
	}
}

// editValue draws widget for one field and turns a change into a command.
// Camera fields go through ChangeFunctionValue so the projection follows.
func editValue[T any](ip *InspectorPanel, s *scene.Scene, e scene.Entity, compType reflect.Type, field FieldInfo, fieldVal reflect.Value, widget func(string, *T) bool) {
	v, ok := fieldVal.Interface().(T)
	if !ok {
		return
	}
	label := fmt.Sprintf("%s##%s", field.Name, compType.Name())
	if widget(label, &v) {
		target := command.StructField[T](e.UUID(), compType, field.Name, field.Index)
		var cmd history.Command
		if compType == cameraType {
			cmd = command.NewChangeFunctionValue(s, target, v, command.RecalculateCamera[T])
		} else {
			cmd = command.NewChangeValue(s, target, v)
		}
		ip.panels.Do(cmd)
	}
	ip.endEditIfReleased()
}

func (ip *InspectorPanel) endEditIfReleased() {
	if imgui.IsItemDeactivatedAfterEdit() {
		ip.panels.sess.EndEdit()
	}
}

// choice renders enum values as a row of buttons, the current one in brackets.
func choice[T interface {
	comparable
	fmt.Stringer
}](options ...T) func(string, *T) bool {
	return func(label string, v *T) bool {
		name, id, _ := strings.Cut(label, "##")
		imgui.Text(name + ":")
		changed := false
		for _, option := range options {
			imgui.SameLine()
			text := option.String()
			if option == *v {
				text = "[" + text + "]"
			}
			if imgui.Button(text + "##" + id + name) {
				*v = option
				changed = true
			}
		}
		return changed
	}
}
