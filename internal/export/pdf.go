/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"workfloweditor/internal/render"
	"workfloweditor/internal/textlayout"
	"workfloweditor/internal/vector"
)

// PDFOptions controls PDF export behavior.
// Units are points; one canvas unit maps to one point. Label text is set in
// the label font (embedded Go Regular unless replaced) so it lines up with the
// placement computed by render.
//
// Coordinates:
// - Page origin is top-left.
// - The page is exactly the frame bounds.
type PDFOptions struct {
	Title  string
	Author string
}

// WritePDF writes the frame as a single-page vector PDF.
func WritePDF(w io.Writer, f Frame, opt PDFOptions) error {
	b := f.Bounds
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(b.W), Ht: float64(b.H)},
	})
	title := opt.Title
	if title == "" {
		title = "Workflow diagram"
	}
	pdf.SetTitle(title, true)
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	pdf.SetCreator("workfloweditor", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(textlayout.DefaultFamily, "", textlayout.LabelFontData())
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	setFillColor(pdf, render.Background)
	pdf.Rect(0, 0, float64(b.W), float64(b.H), "F")

	at := func(p vector.Pt) (float64, float64) { return float64(p.X - b.X), float64(p.Y - b.Y) }

	for _, op := range f.Ops {
		style := pdfStyle(pdf, op)
		switch op.Kind {
		case render.KindRect:
			x, y := at(op.Rect.Min())
			if style != "" {
				pdf.Rect(x, y, float64(op.Rect.W), float64(op.Rect.H), style)
			}
		case render.KindOval:
			cx, cy := at(op.Rect.Center())
			if style != "" {
				pdf.Ellipse(cx, cy, float64(op.Rect.W)/2, float64(op.Rect.H)/2, 0, style)
			}
		case render.KindPolygon:
			pts := make([]gofpdf.PointType, len(op.Points))
			for i, p := range op.Points {
				pts[i].X, pts[i].Y = at(p)
			}
			if style != "" {
				pdf.Polygon(pts, style)
			}
		case render.KindLine:
			for i := 1; i < len(op.Points); i++ {
				x1, y1 := at(op.Points[i-1])
				x2, y2 := at(op.Points[i])
				pdf.Line(x1, y1, x2, y2)
			}
		case render.KindText:
			if len(op.Points) == 0 {
				continue
			}
			x, y := at(op.Points[0])
			pdf.SetFont(textlayout.DefaultFamily, "", float64(op.FontSize))
			pdf.SetTextColor(int(op.Fill.Color.R), int(op.Fill.Color.G), int(op.Fill.Color.B))
			pdf.Text(x, y, op.Text)
		}
		pdf.SetAlpha(1, "Normal")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// pdfStyle applies the op's paint to the document and returns the gofpdf
// style string ("F", "D", "FD" or "" for nothing to paint).
func pdfStyle(pdf *gofpdf.Fpdf, op render.Op) string {
	style := ""
	alpha := 1.0
	if op.Fill.Enabled {
		setFillColor(pdf, op.Fill.Color)
		style += "F"
		alpha = float64(op.Fill.Color.A) / 255
	}
	if op.Stroke.Enabled {
		setDrawColor(pdf, op.Stroke.Color)
		pdf.SetLineWidth(float64(op.Stroke.Width))
		style += "D"
		if !op.Fill.Enabled {
			alpha = float64(op.Stroke.Color.A) / 255
		}
	}
	if alpha < 1 {
		pdf.SetAlpha(alpha, "Normal")
	}
	return style
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
