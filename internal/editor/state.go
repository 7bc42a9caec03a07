/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"workfloweditor/internal/diagram"
	"workfloweditor/internal/vector"
)

// DragState is the closed set of drag sub-states. Exactly one is active.
type DragState interface {
	Name() string
	isDrag()
}

// Idle means no button-held gesture is in progress.
type Idle struct{}

// DraggingObject moves Target by the pointer delta since Last.
type DraggingObject struct {
	Target diagram.ShapeID
	Last   vector.Pt
}

// DraggingMarquee spans a rubber band between Anchor and Current.
type DraggingMarquee struct {
	Anchor  vector.Pt
	Current vector.Pt
}

// DraggingLink previews a link from Source's Anchor to Pointer.
type DraggingLink struct {
	Kind    diagram.LinkKind
	Source  diagram.ShapeID
	Anchor  vector.Pt
	Pointer vector.Pt
}

func (Idle) Name() string            { return "idle" }
func (DraggingObject) Name() string  { return "dragging-object" }
func (DraggingMarquee) Name() string { return "dragging-marquee" }
func (DraggingLink) Name() string    { return "dragging-link" }

func (Idle) isDrag()            {}
func (DraggingObject) isDrag()  {}
func (DraggingMarquee) isDrag() {}
func (DraggingLink) isDrag()    {}

// Rect is the normalized marquee rectangle.
func (m DraggingMarquee) Rect() vector.Rect { return vector.RectFromCorners(m.Anchor, m.Current) }
