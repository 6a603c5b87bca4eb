/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"pagebuilder/internal/config"
	"pagebuilder/internal/crash"
	applog "pagebuilder/internal/log"
	"pagebuilder/internal/ui"
	"pagebuilder/internal/version"
)

func usage() {
	fmt.Println("Page Builder")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pagebuilder version|-v|--version   Show version")
	fmt.Println("  pagebuilder ui                     Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Println("  pagebuilder config                 Print the effective configuration")
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
		l.Warn("config load failed; using defaults", slog.Any("err", cfgErr))
	}
	defer crash.Recover(nil)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Page Builder")
			fmt.Println(version.String())
			return
		case "config":
			path, err := config.ConfigPath()
			if err != nil {
				path = "(unresolved: " + err.Error() + ")"
			}
			printConfig(os.Stdout, path, cfg)
			return
		case "ui":
			if err := ui.Run(cfg); err != nil {
				l.Error("ui failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// printConfig lists every key with its effective value. Keys set through the
// environment name their variable.
func printConfig(w io.Writer, path string, cfg config.AppConfig) {
	_, _ = fmt.Fprintf(w, "Config file: %s\n", path)
	for _, k := range config.Keys() {
		line := fmt.Sprintf("  %s = %s", k, cfg.Value(k))
		if env, ok := config.EnvOverrideFor(k); ok {
			line += fmt.Sprintf("  (from %s)", env)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
