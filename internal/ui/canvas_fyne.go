//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"workfloweditor/internal/editor"
	"workfloweditor/internal/export"
	"workfloweditor/internal/render"
	"workfloweditor/internal/textlayout"
)

// DiagramCanvas is the drawing surface. It forwards primary-button mouse
// events to the editor and repaints the compiled frame through a raster, so
// the window shows exactly what the PNG export produces.
type DiagramCanvas struct {
	widget.BaseWidget

	ed     *editor.Editor
	text   textlayout.Provider
	size   fyne.Size
	raster *canvas.Raster

	pressed bool
}

// NewDiagramCanvas wires a canvas to ed; every editor change repaints it.
func NewDiagramCanvas(ed *editor.Editor, minSize fyne.Size) *DiagramCanvas {
	d := &DiagramCanvas{ed: ed, text: textlayout.LabelProvider(), size: minSize}
	d.ExtendBaseWidget(d)
	ed.OnChange(d.Refresh)
	return d
}

func (d *DiagramCanvas) CreateRenderer() fyne.WidgetRenderer {
	d.raster = canvas.NewRaster(d.draw)
	d.raster.SetMinSize(d.size)
	return widget.NewSimpleRenderer(d.raster)
}

// draw renders the current frame at the raster's pixel size.
func (d *DiagramCanvas) draw(w, h int) image.Image {
	sz := d.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		sz = fyne.NewSize(float32(w), float32(h))
	}
	ops := render.Compile(d.ed, render.Options{Text: d.text})
	return export.Rasterize(export.Canvas(ops, sz.Width, sz.Height), export.PNGOptions{
		Scale: float64(w) / float64(sz.Width),
		Text:  d.text,
	})
}

// MouseDown implements desktop.Mouseable.
func (d *DiagramCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	d.pressed = true
	d.ed.PointerDown(e.Position.X, e.Position.Y)
}

// MouseUp implements desktop.Mouseable.
func (d *DiagramCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !d.pressed {
		return
	}
	d.pressed = false
	d.ed.PointerUp(e.Position.X, e.Position.Y)
}

// Dragged implements fyne.Draggable.
func (d *DiagramCanvas) Dragged(e *fyne.DragEvent) {
	if !d.pressed {
		return
	}
	d.ed.PointerMove(e.Position.X, e.Position.Y)
}

// DragEnd finishes a gesture whose release landed outside the widget.
func (d *DiagramCanvas) DragEnd() {
	if !d.pressed {
		return
	}
	d.pressed = false
	p := d.ed.Pointer()
	d.ed.PointerUp(p.X, p.Y)
}

// MouseIn implements desktop.Hoverable.
func (d *DiagramCanvas) MouseIn(e *desktop.MouseEvent) { d.MouseMoved(e) }

// MouseMoved implements desktop.Hoverable.
func (d *DiagramCanvas) MouseMoved(e *desktop.MouseEvent) {
	if d.pressed {
		return
	}
	d.ed.PointerHover(e.Position.X, e.Position.Y)
}

// MouseOut implements desktop.Hoverable.
func (d *DiagramCanvas) MouseOut() {}

var (
	_ desktop.Mouseable = (*DiagramCanvas)(nil)
	_ desktop.Hoverable = (*DiagramCanvas)(nil)
	_ fyne.Draggable    = (*DiagramCanvas)(nil)
)
