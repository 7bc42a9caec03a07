/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes a compiled draw list to SVG, PNG or PDF.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	applog "workfloweditor/internal/log"
	"workfloweditor/internal/render"
	"workfloweditor/internal/vector"
)

// Format is an output file type.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ErrUnsupportedFormat is returned for file extensions no writer handles.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case FormatSVG, FormatPNG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// DefaultMargin surrounds the drawing when the frame is fitted to its content.
const DefaultMargin = 20

// Frame is a draw list together with the area of the canvas to output.
type Frame struct {
	Ops    []render.Op
	Bounds vector.Rect
}

// Fit frames ops tightly with margin on all sides. An empty list yields a
// margin-sized blank frame at the origin.
func Fit(ops []render.Op, margin float32) Frame {
	return Frame{Ops: ops, Bounds: render.Bounds(ops).Inset(-margin, -margin)}
}

// Canvas frames ops on a fixed canvas starting at the origin, the way the
// editor window shows them.
func Canvas(ops []render.Op, w, h float32) Frame {
	return Frame{Ops: ops, Bounds: vector.R(0, 0, w, h)}
}

// Options carries the per-format settings.
type Options struct {
	PNG PNGOptions
	PDF PDFOptions
}

// ToFile writes f to path in the format implied by its extension, creating
// parent directories as needed.
func ToFile(ctx context.Context, path string, f Frame, opt Options) error {
	ctx = applog.ContextWith(ctx, slog.String("out", path))

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	l := applog.WithOperation(applog.WithComponent("export"), "write-"+string(format))
	var buf bytes.Buffer
	switch format {
	case FormatSVG:
		err = WriteSVG(&buf, f)
	case FormatPNG:
		err = WritePNG(&buf, f, opt.PNG)
	case FormatPDF:
		err = WritePDF(&buf, f, opt.PDF)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	l.InfoContext(ctx, "diagram exported", slog.Int("ops", len(f.Ops)), slog.Int("bytes", buf.Len()))
	return nil
}
