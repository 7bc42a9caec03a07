/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"errors"
	"fmt"
	"strings"

	"workfloweditor/internal/diagram"
)

// Mode is the active tool.
type Mode uint8

const (
	ModeSelect Mode = iota
	ModeRect
	ModeOval
	ModeAssociation
	ModeGeneralization
	ModeComposition
	modeCount
)

var modeNames = [modeCount]string{
	ModeSelect:         "select",
	ModeRect:           "rect",
	ModeOval:           "oval",
	ModeAssociation:    "association",
	ModeGeneralization: "generalization",
	ModeComposition:    "composition",
}

// ErrUnknownMode is returned by ParseMode for names outside the tool set.
var ErrUnknownMode = errors.New("unknown editor mode")

// Modes lists every tool in toolbar order.
func Modes() []Mode {
	out := make([]Mode, 0, modeCount)
	for m := ModeSelect; m < modeCount; m++ {
		out = append(out, m)
	}
	return out
}

func (m Mode) Valid() bool { return m < modeCount }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// LinkKind maps the three link tools to the link they create.
func (m Mode) LinkKind() (diagram.LinkKind, bool) {
	switch m {
	case ModeAssociation:
		return diagram.Association, true
	case ModeGeneralization:
		return diagram.Generalization, true
	case ModeComposition:
		return diagram.Composition, true
	default:
		return 0, false
	}
}

// ParseMode accepts the toolbar names, case-insensitively.
func ParseMode(s string) (Mode, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == n {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("parse mode %q: %w", s, ErrUnknownMode)
}
