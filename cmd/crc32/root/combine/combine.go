// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package combine

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/suprsokr/go-crc32/internal/cliutil"
	"github.com/suprsokr/go-crc32/internal/sumfile"
)

type result struct {
	CRC sumfile.Sum `json:"crc" yaml:"crc"`
}

// NewCombineCmd creates the command that joins two checksums.
func NewCombineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine <crc1> <crc2> <len2>",
		Short: "Combine the checksums of two consecutive parts",
		Long: heredoc.Doc(`
			Print the CRC-32 of part A followed by part B, given the checksum
			of each part and the length of B in bytes. The parts themselves
			are not needed.
		`),
		Example: heredoc.Doc(`
			# "12345" and "6789"
			$ crc32 combine cbf53a1c 9dbabf87 4
		`),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			crc1, err := sumfile.ParseSum(args[0])
			if err != nil {
				return err
			}
			crc2, err := sumfile.ParseSum(args[1])
			if err != nil {
				return err
			}
			len2, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("parse length %q: %w", args[2], err)
			}
			if len2 < 0 {
				return fmt.Errorf("length must not be negative: %d", len2)
			}

			tab, err := cliutil.Table()
			if err != nil {
				return err
			}

			res := result{CRC: sumfile.Sum(tab.Combine(uint32(crc1), uint32(crc2), len2))}
			return cliutil.HandleOutput(cmd, res, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, res.CRC)
				return err
			})
		},
	}

	cliutil.AddOutputFlags(cmd)

	return cmd
}
