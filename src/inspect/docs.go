// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package inspect provides the command-line interface for examining
// ca-bundle files produced by the crawler. It parses a bundle back into
// individual certificates and supports three modes: a markdown table
// listing, per-certificate field printing for scripting, and extraction
// into standalone PEM files optionally numbered by bundle position.
package inspect
