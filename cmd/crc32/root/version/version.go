// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suprsokr/go-crc32"
	"github.com/suprsokr/go-crc32/internal/cliutil"
)

// Version is set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewVersionCmd creates a new command that displays version information
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display the version, git commit, build date and native byte order of the CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]any{
				"version":     Version,
				"gitCommit":   GitCommit,
				"buildDate":   BuildDate,
				"nativeOrder": crc32.NativeEndian().String(),
			}
			return cliutil.HandleOutput(cmd, info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "crc32 %s (commit %s, built %s, %s-endian)\n",
					Version, GitCommit, BuildDate, crc32.NativeEndian())
				return err
			})
		},
	}

	cliutil.AddOutputFlags(cmd)

	return cmd
}
