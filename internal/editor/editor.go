/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the interaction state machine of the workflow editor. It
// turns pointer events and menu commands into scene mutations, holding the
// current tool mode and the single active drag sub-state.
//
// An Editor is single-threaded: every call runs to completion before the next
// one is accepted, so callers (the UI event loop) must not call it
// concurrently.
package editor

import (
	"context"
	"fmt"
	"log/slog"

	"workfloweditor/internal/diagram"
	applog "workfloweditor/internal/log"
	"workfloweditor/internal/vector"
)

// Default sizes of shapes created by the rect and oval tools. The pointer
// becomes the top-left corner.
const (
	RectWidth  = 90
	RectHeight = 120
	OvalWidth  = 120
	OvalHeight = 80
)

// MinMarqueeExtent is the size a marquee must exceed on both axes to select.
const MinMarqueeExtent = 5

// SceneView is the read-only face of the scene handed to renderers.
type SceneView interface {
	TopLevel() []diagram.ShapeID
	Shape(id diagram.ShapeID) (diagram.Shape, bool)
	Bounds(id diagram.ShapeID) (vector.Rect, bool)
	Links() []diagram.Link
	Selection() []diagram.ShapeID
	IsSelected(id diagram.ShapeID) bool
	IsCovered(id diagram.ShapeID) bool
	SelectionControlPoints() []vector.Pt
	Len() int
}

// Editor owns one scene and the transient interaction state over it.
type Editor struct {
	scene   *diagram.Scene
	mode    Mode
	drag    DragState
	pointer vector.Pt
	log     *slog.Logger

	listeners []func()
}

// New returns an editor over an empty scene in select mode.
func New() *Editor {
	return &Editor{
		scene: diagram.NewScene(),
		mode:  ModeSelect,
		drag:  Idle{},
		log:   applog.WithComponent("editor"),
	}
}

// Scene exposes the scene read-only.
func (e *Editor) Scene() SceneView { return e.scene }

func (e *Editor) Mode() Mode { return e.mode }

// Drag returns the active drag sub-state.
func (e *Editor) Drag() DragState { return e.drag }

// Pointer is the last pointer position seen by any event.
func (e *Editor) Pointer() vector.Pt { return e.pointer }

// OnChange registers fn to run after every call that may have changed the
// scene or the interaction state.
func (e *Editor) OnChange(fn func()) { e.listeners = append(e.listeners, fn) }

// logCtx carries the interaction state onto every record the editor logs.
func (e *Editor) logCtx() context.Context {
	return applog.ContextWith(context.Background(),
		slog.String("mode", e.mode.String()), slog.String("drag", e.drag.Name()))
}

func (e *Editor) changed() {
	for _, fn := range e.listeners {
		fn()
	}
}

// Summary is a one-line description of the editor state.
func (e *Editor) Summary() string {
	return fmt.Sprintf("mode=%s drag=%s shapes=%d links=%d selected=%d",
		e.mode, e.drag.Name(), e.scene.Len(), len(e.scene.Links()), len(e.scene.Selection()))
}

// SetMode switches the tool and discards any gesture in progress. An invalid
// mode is a programming error.
func (e *Editor) SetMode(m Mode) {
	if !m.Valid() {
		panic(fmt.Sprintf("editor: %v", m))
	}
	if _, idle := e.drag.(Idle); !idle {
		e.log.DebugContext(e.logCtx(), "drag cancelled by mode change")
	}
	e.log.DebugContext(e.logCtx(), "mode set", slog.String("from", e.mode.String()), slog.String("to", m.String()))
	e.mode = m
	e.drag = Idle{}
	e.changed()
}

// SetModeName is SetMode for a toolbar name such as "composition".
func (e *Editor) SetModeName(name string) error {
	m, err := ParseMode(name)
	if err != nil {
		return err
	}
	e.SetMode(m)
	return nil
}

func (e *Editor) transition(to DragState) {
	if e.drag.Name() != to.Name() {
		e.log.DebugContext(e.logCtx(), "drag transition", slog.String("from", e.drag.Name()), slog.String("to", to.Name()))
	}
	e.drag = to
}

// PointerDown starts a gesture according to the current mode.
func (e *Editor) PointerDown(x, y float32) {
	p := vector.P(x, y)
	e.pointer = p
	defer e.changed()

	switch e.mode {
	case ModeRect:
		id := e.scene.AddPrimitive(vector.OutlineRect, vector.R(x, y, RectWidth, RectHeight))
		e.log.InfoContext(e.logCtx(), "shape added", slog.String("shape", string(id)), slog.String("outline", "rect"))
	case ModeOval:
		id := e.scene.AddPrimitive(vector.OutlineOval, vector.R(x, y, OvalWidth, OvalHeight))
		e.log.InfoContext(e.logCtx(), "shape added", slog.String("shape", string(id)), slog.String("outline", "oval"))
	case ModeSelect:
		e.selectDown(p)
	case ModeAssociation, ModeGeneralization, ModeComposition:
		e.linkDown(p)
	default:
		panic(fmt.Sprintf("editor: pointer down in %v", e.mode))
	}
}

func (e *Editor) selectDown(p vector.Pt) {
	if hit, ok := e.scene.TopmostShapeAt(p); ok && !e.scene.IsCovered(hit) {
		e.scene.Select(hit)
		e.scene.Raise(hit)
		e.transition(DraggingObject{Target: hit, Last: p})
		return
	}
	e.transition(DraggingMarquee{Anchor: p, Current: p})
}

func (e *Editor) linkDown(p vector.Pt) {
	kind, _ := e.mode.LinkKind()
	for _, id := range e.scene.Selection() {
		if e.scene.IsCovered(id) {
			continue
		}
		if hit, ok := e.scene.ControlPointIn(id, p); ok {
			e.transition(DraggingLink{Kind: kind, Source: hit.Owner, Anchor: hit.Point, Pointer: p})
			return
		}
	}
	e.log.DebugContext(e.logCtx(), "link not started: no selected control point under pointer",
		slog.Float64("x", float64(p.X)), slog.Float64("y", float64(p.Y)))
}

// PointerMove advances the active gesture.
func (e *Editor) PointerMove(x, y float32) {
	p := vector.P(x, y)
	e.pointer = p
	defer e.changed()

	switch d := e.drag.(type) {
	case Idle:
	case DraggingObject:
		delta := p.Sub(d.Last)
		e.scene.Move(d.Target, delta.X, delta.Y)
		d.Last = p
		e.drag = d
	case DraggingMarquee:
		d.Current = p
		e.drag = d
	case DraggingLink:
		d.Pointer = p
		e.drag = d
	default:
		panic(fmt.Sprintf("editor: unknown drag state %T", d))
	}
}

// PointerHover records the pointer while no button is held.
func (e *Editor) PointerHover(x, y float32) {
	e.pointer = vector.P(x, y)
	e.changed()
}

// PointerUp finishes the active gesture and returns to idle.
func (e *Editor) PointerUp(x, y float32) {
	p := vector.P(x, y)
	e.pointer = p
	defer e.changed()

	switch d := e.drag.(type) {
	case Idle:
	case DraggingObject:
		e.log.DebugContext(e.logCtx(), "object dropped", slog.String("shape", string(d.Target)))
	case DraggingMarquee:
		d.Current = p
		e.finishMarquee(d.Rect())
	case DraggingLink:
		e.finishLink(d, p)
	default:
		panic(fmt.Sprintf("editor: unknown drag state %T", d))
	}
	e.transition(Idle{})
}

func (e *Editor) finishMarquee(r vector.Rect) {
	if r.W <= MinMarqueeExtent || r.H <= MinMarqueeExtent {
		e.log.DebugContext(e.logCtx(), "marquee too small", slog.Float64("w", float64(r.W)), slog.Float64("h", float64(r.H)))
		return
	}
	inside := e.scene.ShapesInside(r)
	if len(inside) == 0 {
		e.log.DebugContext(e.logCtx(), "marquee selected nothing; selection kept")
		return
	}
	e.scene.Select(inside...)
	e.log.DebugContext(e.logCtx(), "marquee selection", slog.Int("count", len(inside)))
}

func (e *Editor) finishLink(d DraggingLink, p vector.Pt) {
	ctx := e.logCtx()
	l := applog.WithOperation(e.log, "complete-link")
	hit, ok := e.scene.ControlPointAt(p)
	if !ok {
		l.DebugContext(ctx, "link dropped: no control point at release")
		return
	}
	target, ok := e.scene.ShapeOwningControlPointAt(p)
	if !ok || e.scene.IsCovered(target) {
		l.DebugContext(ctx, "link dropped: no uncovered shape owns the control point")
		return
	}
	if target == d.Source {
		l.DebugContext(ctx, "link dropped: self link", slog.String("shape", string(target)))
		return
	}
	anchor := hit.Point
	if hit.Owner != target {
		// a selected shape won the control point search; anchor on the owner
		own, _ := e.scene.ControlPointIn(target, p)
		anchor = own.Point
	}
	link := diagram.Link{Kind: d.Kind, Source: d.Source, Target: target, SourceAnchor: d.Anchor, TargetAnchor: anchor}
	if !e.scene.AddLink(link) {
		l.DebugContext(ctx, "link dropped: endpoints rejected by scene")
		return
	}
	l.InfoContext(ctx, "link added", slog.String("kind", d.Kind.String()),
		slog.String("source", string(d.Source)), slog.String("target", string(target)))
}

// GroupSelection wraps the selection into a composite.
func (e *Editor) GroupSelection() bool {
	defer e.changed()
	id, ok := e.scene.Group()
	if !ok {
		e.log.DebugContext(e.logCtx(), "group ignored: fewer than two shapes selected")
		return false
	}
	e.log.InfoContext(e.logCtx(), "shapes grouped", slog.String("composite", string(id)))
	return true
}

// UngroupSelection dissolves a lone selected composite.
func (e *Editor) UngroupSelection() bool {
	defer e.changed()
	children, ok := e.scene.Ungroup()
	if !ok {
		e.log.DebugContext(e.logCtx(), "ungroup ignored: selection is not a single composite")
		return false
	}
	e.log.InfoContext(e.logCtx(), "composite ungrouped", slog.Int("children", len(children)))
	return true
}

// SetLabelOnSelection labels the first selected shape. The caller validates
// the values.
func (e *Editor) SetLabelOnSelection(text string, shape vector.Outline, color vector.Color, fontSize int) bool {
	defer e.changed()
	if !e.scene.SetLabel(diagram.Label{Text: text, Shape: shape, Color: color, FontSize: fontSize}) {
		e.log.DebugContext(e.logCtx(), "label ignored: no selected primitive")
		return false
	}
	e.log.InfoContext(e.logCtx(), "label set", slog.String("text", text), slog.Int("font_size", fontSize))
	return true
}

// LabelTarget reports the shape the label dialog would edit: the first
// selected shape, when it is a primitive.
func (e *Editor) LabelTarget() (*diagram.Primitive, bool) {
	sel := e.scene.Selection()
	if len(sel) == 0 {
		return nil, false
	}
	sh, _ := e.scene.Shape(sel[0])
	p, ok := sh.(*diagram.Primitive)
	return p, ok
}
