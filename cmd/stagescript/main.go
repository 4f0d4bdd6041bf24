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
	"strconv"

	"stagescript/internal/backend"
	"stagescript/internal/config"
	"stagescript/internal/crash"
	"stagescript/internal/export"
	applog "stagescript/internal/log"
	"stagescript/internal/storage"
	"stagescript/internal/version"
)

func usage() {
	fmt.Println("StageScript — stage play script editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stagescript version|-v|--version              Show version")
	fmt.Println("  stagescript init <dir> [title]                Create a new script project at <dir>")
	fmt.Println("  stagescript open <dir>                        Open project at <dir> and print summary")
	fmt.Println("  stagescript validate <dir>                    Validate the project manifest against the schema")
	fmt.Println("  stagescript export <dir> [out.md]             Export the script to Markdown with a JSON sidecar")
	fmt.Println("  stagescript pdf <dir> [out.pdf]               Export the script to a paginated PDF")
	fmt.Println("  stagescript history <dir> [limit]             List export snapshots, newest first")
	fmt.Println("  stagescript serve                             Run the sync backend server")
	fmt.Println("  stagescript remote list                       List scripts on the sync server")
	fmt.Println("  stagescript remote push <dir> <stable-id>     Upload the project manifest")
	fmt.Println("  stagescript remote pull <dir> <stable-id>     Download a manifest into the project")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var ph *storage.ProjectHandle
	defer func() { crash.Recover(ph) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("StageScript — stage play script editor")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 3 {
				fmt.Println("init requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			doc := storage.Document{}
			if len(args) >= 4 {
				doc.Title = args[3]
			}
			l.Info("init project", slog.String("root", abs), slog.String("title", doc.Title))
			h, err := storage.InitProject(abs, doc)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			fmt.Println("Created project at", abs)
			return
		case "open":
			ph = mustOpen(l, args, 2)
			s, err := storage.BuildScript(ph.Doc)
			if err != nil {
				l.Error("build script failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			title, _ := s.Title()
			fmt.Printf("Opened script: %s\n", title)
			if sub, ok := s.Subtitle(); ok {
				fmt.Println("Subtitle:", sub)
			}
			fmt.Printf("Scenes: %d\n", s.NumScenes())
			fmt.Printf("Characters: %v\n", s.Characters())
			fmt.Printf("Locations: %v\n", s.Locations())
			fmt.Println("Root:", ph.Root)
			return
		case "validate":
			if len(args) < 3 {
				fmt.Println("validate requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			b, err := os.ReadFile(filepath.Join(abs, storage.ManifestFileName))
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := storage.ValidateDocument(b); err != nil {
				fmt.Println("Invalid manifest:", err)
				os.Exit(1)
			}
			fmt.Println("Manifest is valid.")
			return
		case "export":
			ph = mustOpen(l, args, 2)
			s, err := storage.BuildScript(ph.Doc)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			out := filepath.Join(ph.Root, "exports", "script.md")
			if len(args) >= 4 {
				out = args[3]
			}
			if err := export.Markdown(context.Background(), ph, s, out); err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			cfg, _, cfgErr := config.Load()
			if cfgErr != nil {
				cfg = config.Defaults()
			}
			if n, err := storage.PruneExportSnapshots(context.Background(), ph, cfg.General.SnapshotKeep); err != nil {
				l.Warn("snapshot prune failed", slog.Any("err", err))
			} else if n > 0 {
				l.Info("pruned export snapshots", slog.Int64("removed", n))
			}
			fmt.Println("Exported to", out)
			return
		case "pdf":
			ph = mustOpen(l, args, 2)
			s, err := storage.BuildScript(ph.Doc)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			out := filepath.Join(ph.Root, "exports", "script.pdf")
			if len(args) >= 4 {
				out = args[3]
			}
			if err := export.PDF(s, out, export.PDFOptions{}); err != nil {
				l.Error("pdf export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported to", out)
			return
		case "history":
			ph = mustOpen(l, args, 2)
			limit := 0
			if len(args) >= 4 {
				limit, _ = strconv.Atoi(args[3])
			}
			list, err := storage.ListExportSnapshots(context.Background(), ph, limit)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(list) == 0 {
				fmt.Println("No export snapshots yet.")
				return
			}
			for _, snap := range list {
				fmt.Printf("%s  %d bytes\n", snap.TS.Format("2006-01-02 15:04:05"), len(snap.Markdown))
			}
			return
		case "serve":
			if err := backend.Start(); err != nil {
				l.Error("server failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "remote":
			if len(args) < 3 {
				fmt.Println("remote requires a subcommand")
				usage()
				os.Exit(2)
			}
			runRemote(l, args[2:], &ph)
			return
		}
	}

	usage()
}

func mustOpen(l *slog.Logger, args []string, idx int) *storage.ProjectHandle {
	if len(args) <= idx {
		fmt.Printf("%s requires <dir>\n", args[1])
		usage()
		os.Exit(2)
	}
	abs, _ := filepath.Abs(args[idx])
	l.Info("open project", slog.String("root", abs))
	h, err := storage.Open(abs)
	if err != nil {
		l.Error("open failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return h
}

func runRemote(l *slog.Logger, args []string, ph **storage.ProjectHandle) {
	cfg, token, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	if !cfg.General.EnableSync {
		fmt.Println("Sync is disabled. Set general.enable_sync in the config file or SSC_ENABLE_SYNC=1.")
		os.Exit(2)
	}
	c := backend.NewClient(cfg.Backend.BaseURL, token)
	ctx := context.Background()

	switch args[0] {
	case "list":
		list, err := c.ListScripts(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if len(list) == 0 {
			fmt.Println("No scripts on server.")
			return
		}
		for _, s := range list {
			fmt.Printf("%-24s v%-4d %s  %s\n", s.StableID, s.Version, s.UpdatedAt.Format("2006-01-02 15:04"), s.Name)
		}
	case "push":
		if len(args) < 3 {
			fmt.Println("remote push requires <dir> and <stable-id>")
			os.Exit(2)
		}
		abs, _ := filepath.Abs(args[1])
		h, err := storage.Open(abs)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		*ph = h
		ver, err := c.PushScript(ctx, args[2], h.Doc)
		if err != nil {
			l.Error("push failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Pushed %s, server version %d\n", args[2], ver)
	case "pull":
		if len(args) < 3 {
			fmt.Println("remote pull requires <dir> and <stable-id>")
			os.Exit(2)
		}
		abs, _ := filepath.Abs(args[1])
		h, err := storage.Open(abs)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		*ph = h
		doc, ver, err := c.PullScript(ctx, args[2])
		if err != nil {
			l.Error("pull failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		h.Doc = doc
		if err := storage.Save(h); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Pulled %s at server version %d\n", args[2], ver)
	default:
		fmt.Println("unknown remote subcommand:", args[0])
		usage()
		os.Exit(2)
	}
}
