// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inspect

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gopki/ca-bundle-crawler/src/internal/helper/posix"
	x509bundle "github.com/gopki/ca-bundle-crawler/src/internal/x509/bundle"
	"github.com/gopki/ca-bundle-crawler/src/logger"
)

var (
	listMode   bool
	printField string
	extractDir string
	numbered   bool
)

// ErrNumberedRequiresDir is returned when --numbered is passed without
// an extraction directory.
var ErrNumberedRequiresDir = errors.New("inspect: --numbered requires --dir")

// Execute runs the root command with the given context and version. The
// optional logger receives user-facing progress output; when omitted, a
// default CLI logger writing to stdout is used.
//
// Certificate data (the table and printed fields) goes to stdout
// directly so it stays pipeable.
func Execute(ctx context.Context, version string, out ...logger.Logger) error {
	cliLog := logger.Logger(logger.NewCLILogger())
	if len(out) > 0 && out[0] != nil {
		cliLog = out[0]
	}

	rootCmd := &cobra.Command{
		Use:   posix.GetExecutableName() + " [BUNDLE_FILE]",
		Short: "CA bundle inspection and extraction tool",
		Long: "Parses a ca-bundle file produced by the CA bundle crawler back into\n" +
			"individual certificates for listing, field printing, or extraction\n" +
			"into standalone PEM files.",
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], cliLog)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&listMode, "list", "l", false, "list certificates as a markdown table (default)")
	flags.StringVarP(&printField, "print", "p", "", "print FIELD for each certificate (subject, issuer, serial, not_before, not_after, ski, aki, sia)")
	flags.StringVarP(&extractDir, "dir", "d", "", "extract certificates as PEM files into DIR")
	flags.BoolVarP(&numbered, "numbered", "n", false, "prefix extracted file names with their bundle position")
	rootCmd.MarkFlagsMutuallyExclusive("list", "print", "dir")

	return rootCmd.ExecuteContext(ctx)
}

// runInspect reads and parses the bundle file, then dispatches to the
// selected mode. Listing is the default when no mode flag is set.
func runInspect(cmd *cobra.Command, bundlePath string, cliLog logger.Logger) error {
	if numbered && extractDir == "" {
		return ErrNumberedRequiresDir
	}

	data, err := os.ReadFile(bundlePath)
	if err != nil {
		return fmt.Errorf("failed to read bundle file: %w", err)
	}
	entries, err := x509bundle.Parse(data)
	if err != nil {
		return err
	}

	switch {
	case extractDir != "":
		paths, err := Extract(entries, extractDir, numbered)
		if err != nil {
			return err
		}
		cliLog.Printf("Extracted %d certificates to %s", len(paths), extractDir)
		return nil
	case printField != "":
		return PrintField(cmd.OutOrStdout(), entries, printField)
	default:
		fmt.Fprint(cmd.OutOrStdout(), RenderTable(entries))
		return nil
	}
}
