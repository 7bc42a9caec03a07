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
	"math"
	"strings"

	"workfloweditor/internal/render"
	"workfloweditor/internal/textlayout"
	"workfloweditor/internal/vector"
)

// WriteSVG renders the frame as a standalone SVG document in canvas units.
func WriteSVG(w io.Writer, f Frame) error {
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, format, args...)
	}

	b := f.Bounds
	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"%g %g %g %g\">\n",
		int(math.Ceil(float64(b.W))), int(math.Ceil(float64(b.H))), b.X, b.Y, b.W, b.H)
	wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", b.X, b.Y, b.W, b.H, svgColor(render.Background))

	for _, op := range f.Ops {
		paint := svgPaint(op)
		switch op.Kind {
		case render.KindRect:
			r := op.Rect
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\"%s/>\n", r.X, r.Y, r.W, r.H, paint)
		case render.KindOval:
			c := op.Rect.Center()
			wf("  <ellipse cx=\"%g\" cy=\"%g\" rx=\"%g\" ry=\"%g\"%s/>\n", c.X, c.Y, op.Rect.W/2, op.Rect.H/2, paint)
		case render.KindLine:
			wf("  <polyline points=\"%s\"%s stroke-linecap=\"round\" stroke-linejoin=\"round\"/>\n", svgPoints(op.Points), paint)
		case render.KindPolygon:
			wf("  <polygon points=\"%s\"%s/>\n", svgPoints(op.Points), paint)
		case render.KindText:
			if len(op.Points) == 0 {
				continue
			}
			p := op.Points[0]
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s, sans-serif\" font-size=\"%g\"%s>%s</text>\n",
				p.X, p.Y, textlayout.DefaultFamily, op.FontSize, paint, escText(op.Text))
		default:
			return fmt.Errorf("svg: unsupported op %v", op.Kind)
		}
	}
	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	return nil
}

func svgPaint(op render.Op) string {
	var b strings.Builder
	if op.Fill.Enabled {
		fmt.Fprintf(&b, " fill=\"%s\"", svgColor(op.Fill.Color))
		if op.Fill.Color.A != 255 {
			fmt.Fprintf(&b, " fill-opacity=\"%.3g\"", float64(op.Fill.Color.A)/255)
		}
	} else {
		b.WriteString(" fill=\"none\"")
	}
	if op.Stroke.Enabled {
		fmt.Fprintf(&b, " stroke=\"%s\" stroke-width=\"%g\"", svgColor(op.Stroke.Color), op.Stroke.Width)
		if op.Stroke.Color.A != 255 {
			fmt.Fprintf(&b, " stroke-opacity=\"%.3g\"", float64(op.Stroke.Color.A)/255)
		}
	}
	return b.String()
}

func svgPoints(pts []vector.Pt) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
