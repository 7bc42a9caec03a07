/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"workfloweditor/internal/config"
	"workfloweditor/internal/crash"
	"workfloweditor/internal/editor"
	"workfloweditor/internal/export"
	applog "workfloweditor/internal/log"
	"workfloweditor/internal/render"
	"workfloweditor/internal/sample"
	"workfloweditor/internal/textlayout"
	"workfloweditor/internal/ui"
	"workfloweditor/internal/version"
)

func usage() {
	fmt.Println("Workflow Design Editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  workfloweditor version|-v|--version     Show version")
	fmt.Println("  workfloweditor ui                       Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Println("  workfloweditor demo <out.svg|png|pdf>   Build the sample diagram and export it")
	fmt.Println("  workfloweditor config [init]            Show the config file path; init writes the defaults")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not fully loaded; using defaults where needed", slog.Any("err", cfgErr))
	}
	if font := cfg.Labels.FontFile; font != "" {
		if err := textlayout.UseLabelFont(font); err != nil {
			l.Warn("label font not loaded; using built-in font", slog.Any("err", err))
		}
	}

	var ed *editor.Editor
	defer crash.Recover(crash.Report{Describe: func() string {
		if ed == nil {
			return "no diagram"
		}
		return ed.Summary()
	}})

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Workflow Design Editor")
			fmt.Println(version.String())
			return
		case "ui":
			if err := ui.Run(cfg); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "demo":
			if len(args) < 3 {
				fmt.Println("demo requires <out.svg|png|pdf>")
				usage()
				os.Exit(2)
			}
			out := args[2]
			if !filepath.IsAbs(out) && cfg.Export.Dir != "" && !strings.ContainsRune(out, filepath.Separator) {
				out = filepath.Join(cfg.Export.Dir, out)
			}
			dl := applog.WithOperation(l, "demo")
			ed = sample.Build()
			dl.Info("demo diagram built", slog.String("state", ed.Summary()))
			ops := render.Document(render.Compile(ed, render.Options{}))
			err := export.ToFile(context.Background(), out, export.Fit(ops, export.DefaultMargin), export.Options{
				PNG: export.PNGOptions{Scale: cfg.Export.Scale},
				PDF: export.PDFOptions{Title: "Sample workflow"},
			})
			if err != nil {
				dl.Error("demo export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", out)
			return
		case "config":
			if err := configCmd(args[2:]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// configCmd prints the config file location, or with "init" writes the
// defaults there unless a file already exists.
func configCmd(args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(path)
		return nil
	}
	if args[0] != "init" {
		return fmt.Errorf("unknown config command %q", args[0])
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Println("Config already exists:", path)
		return nil
	}
	if err := config.Save(config.Defaults()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	applog.WithOperation(applog.WithComponent("cli"), "config-init").Info("config written", slog.String("path", path))
	fmt.Println("Wrote", path)
	return nil
}
