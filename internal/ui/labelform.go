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
	_ "embed"
	"errors"
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"workfloweditor/internal/config"
	"workfloweditor/internal/diagram"
	"workfloweditor/internal/editor"
	"workfloweditor/internal/vector"
)

//go:embed labelform.schema.json
var labelSchema []byte

var labelSchemaLoader = gojsonschema.NewBytesLoader(labelSchema)

// Reasons the label dialog refuses to open.
var (
	ErrNoSelection       = errors.New("select a shape first")
	ErrCompositeSelected = errors.New("groups cannot carry a label; ungroup first")
	ErrInvalidLabel      = errors.New("invalid label")
)

// LabelForm is the content of the label dialog.
type LabelForm struct {
	Text     string `json:"text"`
	Shape    string `json:"shape"` // "Rect" | "Oval"
	Color    string `json:"color"`
	FontSize int    `json:"font_size"`
}

// LabelShapes are the background choices, in display order.
var LabelShapes = []string{"Rect", "Oval"}

func shapeName(o vector.Outline) string {
	if o == vector.OutlineRect {
		return "Rect"
	}
	return "Oval"
}

func shapeOutline(name string) vector.Outline {
	if strings.EqualFold(strings.TrimSpace(name), "rect") {
		return vector.OutlineRect
	}
	return vector.OutlineOval
}

// LabelDialogDefaults returns the values the dialog opens with: the existing
// label of the first selected shape, otherwise the configured defaults.
func LabelDialogDefaults(e *editor.Editor, def config.LabelDefaults) (LabelForm, error) {
	if len(e.Scene().Selection()) == 0 {
		return LabelForm{}, ErrNoSelection
	}
	target, ok := e.LabelTarget()
	if !ok {
		return LabelForm{}, ErrCompositeSelected
	}
	if l, ok := target.Label(); ok {
		name, known := diagram.LabelColorName(l.Color)
		if !known {
			name = diagram.DefaultLabelColor
		}
		return LabelForm{Text: l.Text, Shape: shapeName(l.Shape), Color: name, FontSize: l.FontSize}, nil
	}
	return LabelForm{
		Text:     def.Text,
		Shape:    shapeName(shapeOutline(def.Shape)),
		Color:    strings.ToLower(def.Color),
		FontSize: def.FontSize,
	}, nil
}

// Validate checks the form against the embedded label schema.
func (f LabelForm) Validate() error {
	res, err := gojsonschema.Validate(labelSchemaLoader, gojsonschema.NewGoLoader(f))
	if err != nil {
		return fmt.Errorf("label schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidLabel, strings.Join(msgs, "; "))
}

// ApplyLabelForm validates f and labels the first selected shape with it.
func ApplyLabelForm(e *editor.Editor, f LabelForm) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if !e.SetLabelOnSelection(f.Text, shapeOutline(f.Shape), diagram.LabelColor(f.Color), f.FontSize) {
		return ErrNoSelection
	}
	return nil
}
