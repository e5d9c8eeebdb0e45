// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable consulted for a
// configuration file path when none is passed explicitly.
const EnvConfigFile = "CA_BUNDLE_CRAWLER_CONFIG"

// Defaults target the public Federal PKI repository: the Federal Common
// Policy CA G2 anchor and the id-fpki-common-authentication policy.
const (
	DefaultAnchor    = "http://repo.fpki.gov/fcpca/fcpcag2.crt"
	DefaultPolicyOID = "2.16.840.1.101.3.2.1.3.13"
	DefaultOutput    = "ca-bundle.pem"
	DefaultTimeout   = 10 * time.Second
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Duration is a [time.Duration] that unmarshals from human-readable
// strings like "10s" or "1h30m" in both JSON and YAML configuration
// files. Bare numbers are read as seconds.
type Duration time.Duration

// Std returns the value as a standard [time.Duration].
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String formats the value like time.Duration does.
func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalJSON accepts either a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.parse(s)
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid duration %s", data)
	}
	*d = Duration(time.Duration(n * float64(time.Second)))
	return nil
}

// UnmarshalYAML accepts either a duration string or a number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		return d.parse(s)
	}
	var n float64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(time.Duration(n * float64(time.Second)))
	return nil
}

func (d *Duration) parse(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config represents the crawler configuration structure. It contains the
// crawl targets, the acceptance policy inputs and download behavior.
//
// The configuration can be loaded from a JSON or YAML file specified by
// the CA_BUNDLE_CRAWLER_CONFIG environment variable, with defaults
// applied for any missing values. Supported file extensions: .json,
// .yaml, .yml
type Config struct {
	// Anchor: URL or file path of the trust anchor certificate
	Anchor string `json:"anchor" yaml:"anchor"`
	// Output: Path of the bundle file to write
	Output string `json:"output" yaml:"output"`
	// PolicyOID: Certificate policy every kept certificate must assert
	PolicyOID string `json:"policyOID" yaml:"policyOID"`
	// Exclusions: Regular expressions matched against certificate subjects
	Exclusions []string `json:"exclusions" yaml:"exclusions"`
	// MaxVisits: Cap on fetched repository locations, 0 means unlimited
	MaxVisits int `json:"maxVisits" yaml:"maxVisits"`
	// Verbose: Enable debug-level logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Fetch: Download behavior for repository locations
	Fetch struct {
		// Timeout: Per-request timeout, e.g. "10s"
		Timeout Duration `json:"timeout" yaml:"timeout"`
		// UserAgent: Overrides the default User-Agent header
		UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
		// Workdir: Directory for downloaded artifacts (empty for a
		// temporary directory)
		Workdir string `json:"workdir,omitempty" yaml:"workdir,omitempty"`
		// KeepWorkdir: Keep downloaded artifacts after the run
		KeepWorkdir bool `json:"keepWorkdir" yaml:"keepWorkdir"`
		// MaxAge: How long cached downloads stay fresh, 0 revalidates
		// every run
		MaxAge Duration `json:"maxAge" yaml:"maxAge"`
	} `json:"fetch" yaml:"fetch"`
}

// detectConfigFormat determines the configuration file format based on
// file extension, matched case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified
// format, delegating to the matching parser.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load loads crawler configuration from a JSON or YAML file or applies
// defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the configuration file cannot be read or parsed
//
// Configuration Priority:
//  1. Default values are set
//  2. CA_BUNDLE_CRAWLER_CONFIG environment variable is checked if
//     configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//
// The file format is detected from the extension (.json, .yaml or .yml).
// Out-of-range values fall back to their defaults after loading.
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Anchor = DefaultAnchor
	config.Output = DefaultOutput
	config.PolicyOID = DefaultPolicyOID
	config.Fetch.Timeout = Duration(DefaultTimeout)

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Validate and set defaults for invalid values
		if config.Anchor == "" {
			config.Anchor = DefaultAnchor
		}
		if config.Output == "" {
			config.Output = DefaultOutput
		}
		if config.PolicyOID == "" {
			config.PolicyOID = DefaultPolicyOID
		}
		if config.Fetch.Timeout <= 0 {
			config.Fetch.Timeout = Duration(DefaultTimeout)
		}
		if config.MaxVisits < 0 {
			config.MaxVisits = 0
		}
		if config.Fetch.MaxAge < 0 {
			config.Fetch.MaxAge = 0
		}
	}

	return config, nil
}
