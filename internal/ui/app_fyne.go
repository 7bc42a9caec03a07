//go:build fyne && cgo

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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"workfloweditor/internal/config"
	"workfloweditor/internal/crash"
	"workfloweditor/internal/diagram"
	"workfloweditor/internal/editor"
	"workfloweditor/internal/export"
	applog "workfloweditor/internal/log"
	"workfloweditor/internal/render"
	"workfloweditor/internal/version"
)

// Run starts the Fyne desktop editor: a mode toolbar above the diagram canvas,
// Edit and File menus and a status line.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	ed := editor.New()
	defer crash.Recover(crash.Report{Describe: ed.Summary})

	fyneApp := app.NewWithID("workfloweditor")
	applyTheme(fyneApp, cfg.General.Theme)
	w := fyneApp.NewWindow("Workflow Design Editor")
	w.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))

	status := widget.NewLabel("Ready")
	diagramCanvas := NewDiagramCanvas(ed, fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))

	// Toolbar: one button per mode, the active one highlighted.
	modeButtons := make(map[editor.Mode]*widget.Button, len(editor.Modes()))
	syncModeButtons := func() {
		for m, b := range modeButtons {
			if m == ed.Mode() {
				b.Importance = widget.HighImportance
			} else {
				b.Importance = widget.MediumImportance
			}
			b.Refresh()
		}
	}
	toolbar := container.NewHBox()
	for _, m := range editor.Modes() {
		name := m.String()
		b := widget.NewButton(modeTitle(m), func() {
			l.Debug("toolbar: mode", slog.String("mode", name))
			if err := ed.SetModeName(name); err != nil {
				l.Error("toolbar: mode", slog.Any("err", err))
				return
			}
			syncModeButtons()
		})
		modeButtons[m] = b
		toolbar.Add(b)
	}
	syncModeButtons()

	ed.OnChange(func() { status.SetText(ed.Summary()) })

	// Edit menu
	labelItem := fyne.NewMenuItem("Label…", func() {
		showLabelDialog(w, ed, cfg.Labels, l)
	})
	groupItem := fyne.NewMenuItem("Group", func() {
		if !ed.GroupSelection() {
			dialog.ShowInformation("Group", "Select at least two shapes to group.", w)
		}
	})
	ungroupItem := fyne.NewMenuItem("Ungroup", func() {
		if !ed.UngroupSelection() {
			dialog.ShowInformation("Ungroup", "Select a single group to ungroup.", w)
		}
	})
	editMenu := fyne.NewMenu("Edit", labelItem, fyne.NewMenuItemSeparator(), groupItem, ungroupItem)

	// File menu
	exportItem := func(f export.Format) *fyne.MenuItem {
		title := "Export as " + strings.ToUpper(string(f)) + "…"
		return fyne.NewMenuItem(title, func() {
			save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				if uc == nil {
					return
				}
				outPath := uc.URI().Path()
				_ = uc.Close()
				if err := exportDiagram(ed, outPath, cfg); err != nil {
					l.Error("export failed", slog.Any("err", err), slog.String("out", outPath))
					dialog.ShowError(err, w)
					return
				}
				dialog.ShowInformation("Export", "Exported to "+outPath, w)
			}, w)
			save.SetFileName("diagram." + string(f))
			save.SetFilter(fstorage.NewExtensionFileFilter([]string{"." + string(f)}))
			if dir := strings.TrimSpace(cfg.Export.Dir); dir != "" {
				if lister, err := fstorage.ListerForURI(fstorage.NewFileURI(dir)); err == nil {
					save.SetLocation(lister)
				}
			}
			save.Show()
		})
	}
	fileMenu := fyne.NewMenu("File", exportItem(export.FormatSVG), exportItem(export.FormatPNG), exportItem(export.FormatPDF))

	aboutItem := fyne.NewMenuItem("About Workflow Design Editor", func() {
		l.Info("menu: about")
		exe, _ := os.Executable()
		info := fmt.Sprintf("Workflow Design Editor\nVersion: %s\nOS: %s\nArch: %s\nGo: %s\nExecutable: %s",
			version.String(), runtime.GOOS, runtime.GOARCH, runtime.Version(), exe)
		dialog.ShowInformation("About", info, w)
	})
	copyrightItem := fyne.NewMenuItem("Copyright…", func() {
		msg := fmt.Sprintf("Workflow Design Editor\nCopyright © 2025-%d The Workflow Editor Authors\n\nLicensed under the Apache License, Version 2.0.", time.Now().Year())
		dialog.ShowInformation("Copyright", msg, w)
	})
	helpMenu := fyne.NewMenu("Help", aboutItem, copyrightItem)

	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
	w.SetContent(container.NewBorder(toolbar, status, nil, nil, diagramCanvas))

	w.ShowAndRun()
	l.Info("UI closed", slog.String("state", ed.Summary()))
	return nil
}

func modeTitle(m editor.Mode) string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// showLabelDialog opens the label form for the first selected shape.
func showLabelDialog(w fyne.Window, ed *editor.Editor, def config.LabelDefaults, l *slog.Logger) {
	initial, err := LabelDialogDefaults(ed, def)
	if err != nil {
		l.Debug("label dialog refused", slog.Any("reason", err))
		dialog.ShowInformation("Label", capitalize(err.Error())+".", w)
		return
	}

	textEntry := widget.NewEntry()
	textEntry.SetText(initial.Text)
	shapeSelect := widget.NewSelect(LabelShapes, nil)
	shapeSelect.SetSelected(initial.Shape)
	colorSelect := widget.NewSelect(diagram.LabelColorNames(), nil)
	colorSelect.SetSelected(initial.Color)
	sizes := make([]string, len(diagram.LabelFontSizes))
	for i, s := range diagram.LabelFontSizes {
		sizes[i] = strconv.Itoa(s)
	}
	sizeSelect := widget.NewSelect(sizes, nil)
	sizeSelect.SetSelected(strconv.Itoa(initial.FontSize))

	form := dialog.NewForm("Label", "OK", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Text", textEntry),
		widget.NewFormItem("Shape", shapeSelect),
		widget.NewFormItem("Color", colorSelect),
		widget.NewFormItem("Font Size", sizeSelect),
	}, func(ok bool) {
		if !ok {
			return
		}
		size, _ := strconv.Atoi(sizeSelect.Selected)
		f := LabelForm{Text: textEntry.Text, Shape: shapeSelect.Selected, Color: colorSelect.Selected, FontSize: size}
		if err := ApplyLabelForm(ed, f); err != nil {
			if errors.Is(err, ErrInvalidLabel) {
				l.Warn("label rejected", slog.Any("err", err))
			}
			dialog.ShowError(err, w)
		}
	}, w)
	form.Resize(fyne.NewSize(360, 260))
	form.Show()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// exportDiagram writes the current scene, without selection feedback, fitted
// to its content.
func exportDiagram(ed *editor.Editor, path string, cfg config.AppConfig) error {
	ops := render.Document(render.Compile(ed, render.Options{}))
	return export.ToFile(context.Background(), path, export.Fit(ops, export.DefaultMargin), export.Options{
		PNG: export.PNGOptions{Scale: cfg.Export.Scale},
		PDF: export.PDFOptions{Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))},
	})
}
