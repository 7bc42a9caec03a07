/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sample

import (
	"testing"

	"workfloweditor/internal/diagram"
	"workfloweditor/internal/editor"
)

func TestBuild(t *testing.T) {
	e := Build()
	s := e.Scene()

	if n := len(s.TopLevel()); n != 4 {
		t.Fatalf("expected 3 stages and 1 group on top level, got %d", n)
	}
	ls := s.Links()
	if len(ls) != 4 {
		t.Fatalf("expected 4 links, got %d", len(ls))
	}
	kinds := map[diagram.LinkKind]int{}
	for _, l := range ls {
		kinds[l.Kind]++
		if l.Source == l.Target {
			t.Fatalf("self link %+v", l)
		}
	}
	if kinds[diagram.Association] != 2 || kinds[diagram.Composition] != 1 || kinds[diagram.Generalization] != 1 {
		t.Fatalf("unexpected link kinds %v", kinds)
	}

	sel := s.Selection()
	if len(sel) != 1 {
		t.Fatalf("expected the new group to be selected, got %v", sel)
	}
	sh, _ := s.Shape(sel[0])
	c, ok := sh.(*diagram.Composite)
	if !ok || len(c.Children()) != 2 {
		t.Fatalf("expected a composite of the two ovals, got %T", sh)
	}

	labeled := 0
	for _, id := range s.TopLevel() {
		sh, _ := s.Shape(id)
		if p, ok := sh.(*diagram.Primitive); ok {
			if _, has := p.Label(); has {
				labeled++
			}
		}
	}
	if labeled != 3 {
		t.Fatalf("expected every stage labeled, got %d", labeled)
	}
	if _, idle := e.Drag().(editor.Idle); !idle || e.Mode() != editor.ModeSelect {
		t.Fatalf("unexpected final state %s", e.Summary())
	}
}

func TestBuild_GroupedLinkEndpointsStayOnChildren(t *testing.T) {
	e := Build()
	s := e.Scene()
	for _, l := range s.Links() {
		for _, id := range []diagram.ShapeID{l.Source, l.Target} {
			sh, ok := s.Shape(id)
			if !ok {
				t.Fatalf("dangling endpoint %s", id)
			}
			if _, prim := sh.(*diagram.Primitive); !prim {
				t.Fatalf("endpoint %s is not a primitive", id)
			}
		}
	}
}
