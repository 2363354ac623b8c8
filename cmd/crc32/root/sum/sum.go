// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package sum

import (
	"fmt"
	"io"
	"runtime"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suprsokr/go-crc32/internal/cliutil"
	"github.com/suprsokr/go-crc32/internal/sumfile"
)

// stdinPath names standard input in listings and for --check.
const stdinPath = "-"

// NewSumCmd creates the command that checksums files.
func NewSumCmd(fs afero.Fs) *cobra.Command {
	var check string

	cmd := &cobra.Command{
		Use:   "sum [file...]",
		Short: "Print or check CRC-32 checksums",
		Long: heredoc.Doc(`
			Print the CRC-32 of each file, or of standard input when no file is
			given. With --check, read a listing written by this command and
			report the files whose contents changed.
		`),
		Example: heredoc.Doc(`
			# Checksum files
			$ crc32 sum build/app.tar build/app.sig

			# Record checksums as YAML and verify them later
			$ crc32 sum --format yaml build/* > build.crc.yaml
			$ crc32 sum --check build.crc.yaml
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := cliutil.Table()
			if err != nil {
				return err
			}
			summer := sumfile.New(fs, tab, viper.GetInt("workers"))

			if check != "" {
				return runCheck(cmd, fs, summer, check)
			}
			return runSum(cmd, summer, args)
		},
	}

	cmd.Flags().StringVarP(&check, "check", "c", "", "Verify the files in a listing ('-' for stdin)")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Number of files checksummed concurrently")
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	cliutil.AddOutputFlags(cmd)

	return cmd
}

func runSum(cmd *cobra.Command, summer *sumfile.Checksummer, paths []string) error {
	var entries []sumfile.Entry
	if len(paths) == 0 {
		crc, size, err := summer.Reader(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		entries = []sumfile.Entry{{Path: stdinPath, CRC: crc, Size: size}}
	} else {
		var err error
		entries, err = summer.Files(cmd.Context(), paths)
		if err != nil {
			return err
		}
	}

	log.Debug("Checksummed files", "count", len(entries))

	return cliutil.HandleOutput(cmd, entries, func(w io.Writer) error {
		return sumfile.WriteText(w, entries)
	})
}

func runCheck(cmd *cobra.Command, fs afero.Fs, summer *sumfile.Checksummer, listingPath string) error {
	listing, err := readListing(cmd, fs, listingPath)
	if err != nil {
		return err
	}

	results, err := summer.Verify(cmd.Context(), listing)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Status != sumfile.StatusOK {
			failed++
			log.Warn("Checksum mismatch", "path", r.Path, "status", r.Status, "want", r.Want, "got", r.Got)
		}
	}

	err = cliutil.HandleOutput(cmd, results, func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.Path, statusText(r.Status)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files did not match", failed, len(results))
	}
	return nil
}

func readListing(cmd *cobra.Command, fs afero.Fs, path string) ([]sumfile.Entry, error) {
	if path == stdinPath {
		return sumfile.Parse(cmd.InOrStdin())
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open listing: %w", err)
	}
	defer f.Close()

	return sumfile.Parse(f)
}

func statusText(s sumfile.Status) string {
	switch s {
	case sumfile.StatusOK:
		return "OK"
	case sumfile.StatusMissing:
		return "MISSING"
	default:
		return "FAILED"
	}
}
