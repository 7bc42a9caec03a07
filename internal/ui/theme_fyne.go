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
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// fixedVariant renders the default theme in one variant regardless of the
// platform preference.
type fixedVariant struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t fixedVariant) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

// themeFor maps general.theme onto a Fyne theme. "system" and unknown names
// return nil, leaving the platform choice in place.
func themeFor(name string) fyne.Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return fixedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantLight}
	case "dark":
		return fixedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantDark}
	default:
		return nil
	}
}

// applyTheme installs the configured theme on a.
func applyTheme(a fyne.App, name string) {
	if th := themeFor(name); th != nil {
		a.Settings().SetTheme(th)
	}
}
