// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudflare/cfssl/log"
	"github.com/spf13/cobra"

	"github.com/gopki/ca-bundle-crawler/src/config"
	"github.com/gopki/ca-bundle-crawler/src/internal/fetch"
	"github.com/gopki/ca-bundle-crawler/src/internal/helper/posix"
	x509crawler "github.com/gopki/ca-bundle-crawler/src/internal/x509/crawler"
	x509policy "github.com/gopki/ca-bundle-crawler/src/internal/x509/policy"
	"github.com/gopki/ca-bundle-crawler/src/logger"
)

var (
	anchorLocation  string
	outputFile      string
	configFile      string
	policyOID       string
	excludePatterns []string
	fetchTimeout    time.Duration
	maxVisits       int
	workdir         string
	keepWorkdir     bool
	verbose         bool
)

var (
	// OperationPerformed reports whether a crawl was started, as opposed
	// to help or version output.
	OperationPerformed bool

	// OperationPerformedSuccessfully reports whether the bundle file was
	// written.
	OperationPerformedSuccessfully bool
)

// Execute runs the root command with the given context and version. The
// optional logger receives user-facing progress output; when omitted, a
// default CLI logger writing to stdout is used.
//
// Returns the error of the underlying command execution, already printed
// by Cobra, so callers only decide the exit code.
func Execute(ctx context.Context, version string, out ...logger.Logger) error {
	cliLog := logger.Logger(logger.NewCLILogger())
	if len(out) > 0 && out[0] != nil {
		cliLog = out[0]
	}

	OperationPerformed = false
	OperationPerformedSuccessfully = false

	rootCmd := &cobra.Command{
		Use:   posix.GetExecutableName(),
		Short: "Federal PKI CA bundle builder",
		Long: "Builds an ordered CA certificate bundle by crawling the CA-repository\n" +
			"graph published through X.509 Subject Information Access extensions,\n" +
			"starting from a trust anchor certificate. Every discovered certificate\n" +
			"is checked against a validation policy before inclusion.",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrawl(cmd, cliLog, version)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&anchorLocation, "anchor", "a", config.DefaultAnchor, "trust anchor certificate URL or file path")
	flags.StringVarP(&outputFile, "output", "o", config.DefaultOutput, "write the bundle to FILE")
	flags.StringVarP(&configFile, "config", "c", "", "configuration file (.json, .yaml, .yml)")
	flags.StringVar(&policyOID, "policy-oid", config.DefaultPolicyOID, "certificate policy OID every kept certificate must assert")
	flags.StringArrayVarP(&excludePatterns, "exclude", "e", nil, "subject pattern to exclude (repeatable)")
	flags.DurationVarP(&fetchTimeout, "timeout", "t", config.DefaultTimeout, "per-request fetch timeout")
	flags.IntVar(&maxVisits, "max-visits", 0, "stop after fetching this many locations (0 = unlimited)")
	flags.StringVar(&workdir, "workdir", "", "directory for downloaded artifacts (default: temporary)")
	flags.BoolVar(&keepWorkdir, "keep-workdir", false, "keep downloaded artifacts after the run")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return rootCmd.ExecuteContext(ctx)
}

// runCrawl resolves the effective configuration, assembles the fetch and
// policy collaborators, runs the crawl and writes the bundle file.
// Configuration priority: defaults, then the config file, then flags set
// on the command line.
func runCrawl(cmd *cobra.Command, cliLog logger.Logger, version string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("anchor") {
		cfg.Anchor = anchorLocation
	}
	if flags.Changed("output") {
		cfg.Output = outputFile
	}
	if flags.Changed("policy-oid") {
		cfg.PolicyOID = policyOID
	}
	if flags.Changed("timeout") {
		cfg.Fetch.Timeout = config.Duration(fetchTimeout)
	}
	if flags.Changed("max-visits") {
		cfg.MaxVisits = maxVisits
	}
	if flags.Changed("workdir") {
		cfg.Fetch.Workdir = workdir
	}
	if flags.Changed("keep-workdir") {
		cfg.Fetch.KeepWorkdir = keepWorkdir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	// Flag patterns extend the config file's exclusion list.
	cfg.Exclusions = append(cfg.Exclusions, excludePatterns...)

	if cfg.Verbose {
		log.Level = log.LevelDebug
	}

	policy, err := x509policy.Compile(cfg.PolicyOID, cfg.Exclusions)
	if err != nil {
		return err
	}

	// A caller-supplied work directory is created if needed and never
	// removed. The temporary fallback is cleaned up unless kept.
	dir := cfg.Fetch.Workdir
	if dir == "" {
		dir, err = os.MkdirTemp("", "ca-bundle-crawler-*")
		if err != nil {
			return fmt.Errorf("failed to create work directory: %w", err)
		}
		if cfg.Fetch.KeepWorkdir {
			defer cliLog.Printf("Downloaded artifacts kept in %s", dir)
		} else {
			defer os.RemoveAll(dir)
		}
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}

	fetchCfg := fetch.NewConfig(version)
	fetchCfg.Timeout = cfg.Fetch.Timeout.Std()
	fetchCfg.UserAgent = cfg.Fetch.UserAgent
	cache := fetch.NewCache(dir, cfg.Fetch.MaxAge.Std(), nil)
	client := fetch.NewClient(fetchCfg, cache)

	cliLog.Printf("Building CA bundle from %s", cfg.Anchor)
	OperationPerformed = true

	crawler := x509crawler.New(x509crawler.Options{
		Fetcher:   client,
		Policy:    policy,
		MaxVisits: cfg.MaxVisits,
	})
	bundle, err := crawler.Run(cmd.Context(), cfg.Anchor)
	if err != nil {
		return err
	}

	if err := bundle.WriteFile(cfg.Output); err != nil {
		return err
	}

	stats := crawler.Stats()
	cliLog.Printf("Wrote %d certificates to %s", bundle.Len(), cfg.Output)
	cliLog.Println(stats.Summary())
	if cfg.Verbose {
		cliLog.Println(cache.Stats())
	}

	OperationPerformedSuccessfully = true
	return nil
}
