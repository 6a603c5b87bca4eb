/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a logged error, a crash report file and a
// non-zero exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"pagebuilder/internal/builder"
	applog "pagebuilder/internal/log"
	"pagebuilder/internal/telemetry"
	"pagebuilder/internal/version"
)

// Snapshotter exposes the page state for the report. *builder.Editor satisfies it.
type Snapshotter interface {
	Snapshot() builder.State
}

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// reportDir is where crash reports go.
var reportDir = os.TempDir

// uploadWait bounds how long Recover waits for the crash upload before exiting.
const uploadWait = 2 * time.Second

// Recover captures a panic, logs it with its stack, writes a crash report
// describing the page, and exits with code 2. src may be nil.
//
// Usage: defer crash.Recover(editor)
func Recover(src Snapshotter) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, report, err := writeReport(src, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err), slog.String("path", reportPath))
	}
	select {
	case <-telemetry.UploadCrash(report):
	case <-time.After(uploadWait):
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

// stateSummary is recovered separately so a broken source cannot mask the
// original panic.
func stateSummary(src Snapshotter) (summary string) {
	if src == nil {
		return "Components: unknown\n"
	}
	defer func() {
		if r := recover(); r != nil {
			summary = fmt.Sprintf("Components: unavailable (%v)\n", r)
		}
	}()
	st := src.Snapshot()
	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, "Components: %d\n", len(st.Components))
	if c, ok := st.Selection(); ok {
		_, _ = fmt.Fprintf(&b, "Selected: %s (%s)\n", c.ID, c.Archetype)
	} else {
		_, _ = fmt.Fprintf(&b, "Selected: none\n")
	}
	return b.String()
}

func writeReport(src Snapshotter, panicVal any, stack []byte) (string, []byte, error) {
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(reportDir(), fmt.Sprintf("pagebuilder-crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Page Builder Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	buf.WriteString(stateSummary(src))
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, buf.Bytes(), err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, buf.Bytes(), err
	}
	_ = f.Sync()
	return path, buf.Bytes(), nil
}
