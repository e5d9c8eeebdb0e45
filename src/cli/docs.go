// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the CA bundle
// crawler. It implements a Cobra-based CLI that crawls the CA-repository
// graph published through Subject Information Access extensions, starting
// from a configurable trust anchor, and writes the accepted certificates
// to an ordered ca-bundle file. The package merges configuration files
// with command-line flags, handles context cancellation, and integrates
// with the logger package for user-facing output.
package cli
