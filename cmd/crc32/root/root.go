// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package root

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suprsokr/go-crc32/cmd/crc32/root/combine"
	"github.com/suprsokr/go-crc32/cmd/crc32/root/gen"
	"github.com/suprsokr/go-crc32/cmd/crc32/root/sum"
	"github.com/suprsokr/go-crc32/cmd/crc32/root/version"
)

// NewRootCmd builds the command tree. Files are read and written through fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crc32 <command> [flags]",
		Short: "CRC-32 lookup tables and checksums",
		Long:  `Generate CRC-32 lookup tables, checksum files and combine checksums.`,
		Example: heredoc.Doc(`
			# Regenerate the compiled-in IEEE table
			$ crc32 gen --output table_ieee.go

			# Checksum files and later check them for changes
			$ crc32 sum data/*.bin > data.crc
			$ crc32 sum --check data.crc
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			log.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("poly", "", "Polynomial exponents, e.g. '0,1,2,4,5,7,8,10,11,12,16,22,23,26' (default IEEE)")
	viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("poly", cmd.PersistentFlags().Lookup("poly"))

	cmd.AddCommand(gen.NewGenCmd(fs))
	cmd.AddCommand(sum.NewSumCmd(fs))
	cmd.AddCommand(combine.NewCombineCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
