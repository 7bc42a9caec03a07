/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is the family label text is set in. It is backed by the
// embedded Go Regular font, so measurements match across renderers.
const DefaultFamily = "Go"

// FontLibrary stores loaded OpenType fonts mapped by family/weight/italic and
// caches the faces created from them per size.
type FontLibrary struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
	data  map[fontKey][]byte
	faces map[faceKey]font.Face
}

type fontKey struct {
	family string
	weight int
	italic bool
}

type faceKey struct {
	font fontKey
	size float32
	dpi  float64
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{
		fonts: make(map[fontKey]*opentype.Font),
		data:  make(map[fontKey][]byte),
		faces: make(map[faceKey]font.Face),
	}
}

var (
	defaultLibOnce sync.Once
	defaultLib     *FontLibrary
)

// DefaultLibrary returns a shared library with DefaultFamily registered.
func DefaultLibrary() *FontLibrary {
	defaultLibOnce.Do(func() {
		defaultLib = NewFontLibrary()
		if err := defaultLib.Register(DefaultFamily, 400, false, goregular.TTF); err != nil {
			panic(fmt.Sprintf("textlayout: embedded font: %v", err))
		}
	})
	return defaultLib
}

// LoadTTF loads a font file into the library under the given family/weight/italic.
func (fl *FontLibrary) LoadTTF(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	if err := fl.Register(family, weight, italic, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Register parses TTF/OTF bytes into the library, replacing any font already
// registered under the same key.
func (fl *FontLibrary) Register(family string, weight int, italic bool, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	k := fontKey{family: family, weight: weight, italic: italic}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.fonts == nil {
		fl.fonts = make(map[fontKey]*opentype.Font)
	}
	if fl.data == nil {
		fl.data = make(map[fontKey][]byte)
	}
	fl.fonts[k] = f
	fl.data[k] = data
	for fk := range fl.faces {
		if fk.font == k {
			delete(fl.faces, fk)
		}
	}
	return nil
}

// Data returns the raw font file registered for family at regular weight.
func (fl *FontLibrary) Data(family string) ([]byte, bool) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	b, ok := fl.data[fontKey{family: family, weight: 400}]
	return b, ok
}

// UseLabelFont replaces the embedded label font with the file at path. PDF
// export embeds the same file, so it should be a TrueType font.
func UseLabelFont(path string) error {
	return DefaultLibrary().LoadTTF(DefaultFamily, 400, false, path)
}

// LabelFontData is the font file label text is currently set in.
func LabelFontData() []byte {
	b, _ := DefaultLibrary().Data(DefaultFamily)
	return b
}

func (fl *FontLibrary) find(spec FontSpec) (fontKey, *opentype.Font) {
	k := fontKey{family: spec.Family, weight: spec.Weight, italic: spec.Italic}
	if f, ok := fl.fonts[k]; ok {
		return k, f
	}
	// any weight or style of the same family
	for k, f := range fl.fonts {
		if k.family == spec.Family {
			return k, f
		}
	}
	return fontKey{}, nil
}

func (fl *FontLibrary) face(spec FontSpec, dpi float64) (font.Face, bool) {
	if fl == nil {
		return nil, false
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	k, f := fl.find(spec)
	if f == nil {
		return nil, false
	}
	fk := faceKey{font: k, size: spec.SizePt, dpi: dpi}
	if face, ok := fl.faces[fk]; ok {
		return face, true
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(spec.SizePt), DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, false
	}
	if fl.faces == nil {
		fl.faces = make(map[faceKey]font.Face)
	}
	fl.faces[fk] = face
	return face, true
}

// OTProvider resolves FontSpec using a FontLibrary and falls back to another Provider.
// It uses kerning as provided by opentype.Face and font.Drawer.
type OTProvider struct {
	Lib      *FontLibrary
	DPI      float64 // default 72 if zero
	Fallback Provider
}

// LabelProvider resolves the default family through DefaultLibrary.
func LabelProvider() OTProvider {
	return OTProvider{Lib: DefaultLibrary(), Fallback: BasicProvider{}}
}

func (p OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	if spec.SizePt <= 0 {
		spec.SizePt = 12
	}
	if spec.Family == "" {
		spec.Family = DefaultFamily
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}
	if face, ok := p.Lib.face(spec, dpi); ok {
		return face, metricsOf(face)
	}
	fb := p.Fallback
	if fb == nil {
		fb = BasicProvider{}
	}
	return fb.Resolve(spec)
}

func metricsOf(face font.Face) Metrics {
	m := face.Metrics()
	return Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}
