// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Command weboverlay-demo runs an Ebitengine scene with a web overlay on top.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YindSoft/ultralight-weboverlay/internal/config"
)

// Build information set via ldflags
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "weboverlay-demo",
		Short:        "Web overlay demo for Ebitengine",
		Long:         `Runs a small Ebitengine scene and shows web pages above it through Ultralight.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(newRunCmd(&configPath))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "weboverlay-demo %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "built: %s\n", buildDate)
		},
	})
	return rootCmd
}

func newRunCmd(configPath *string) *cobra.Command {
	var (
		url  string
		rect string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the demo window",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			m := config.NewManager(*configPath)
			if err := m.Load(); err != nil {
				return err
			}
			cfg := *m.Get()
			if url != "" {
				cfg.Overlay.URL = url
			}
			if rect != "" {
				x, y, w, h, err := parseRect(rect)
				if err != nil {
					return err
				}
				cfg.Overlay.Left, cfg.Overlay.Top = x, y
				cfg.Overlay.Width, cfg.Overlay.Height = w, h
				cfg.Overlay.WidthPercent, cfg.Overlay.HeightPercent = 0, 0
			}
			return run(m, &cfg)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "page shown by the O key (overrides overlay.url)")
	cmd.Flags().StringVar(&rect, "rect", "", "overlay rectangle as x,y,w,h")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the demo configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write the default configuration to path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})
	return cmd
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (x, y, w, h int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("rect %q: want x,y,w,h", s)
	}
	var vals [4]int
	for i, p := range parts {
		vals[i], err = strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("rect %q: %w", s, err)
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
