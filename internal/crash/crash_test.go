/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport(Report{}, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Workflow Editor Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
	if strings.Contains(s, "Editor:") {
		t.Fatalf("no describer was set: %s", s)
	}
}

func TestWriteReportUsesDirAndDescriber(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := writeReport(Report{Dir: dir, Describe: func() string { return "mode=select shapes=3" }}, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected crash report under %s, got %s", dir, path)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "Editor: mode=select shapes=3") {
		t.Fatalf("describer output missing: %s", b)
	}
}

func TestDescribeSurvivesPanickingDescriber(t *testing.T) {
	got := describe(func() string { panic("broken scene") })
	if !strings.Contains(got, "broken scene") {
		t.Fatalf("unexpected describe result %q", got)
	}
}
