// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// ca-bundle-inspect is a command-line tool that parses a ca-bundle file
// produced by ca-bundle-crawler back into individual certificates for
// listing, field printing, or extraction.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/gopki/ca-bundle-crawler/cmd/ca-bundle-inspect@latest
//
// # Usage
//
//	ca-bundle-inspect BUNDLE_FILE [FLAGS]
//
// # Flags
//
//	-l, --list     List certificates as a markdown table (default)
//	-p, --print    Print FIELD for each certificate (subject, issuer,
//	               serial, not_before, not_after, ski, aki, sia)
//	-d, --dir      Extract certificates as PEM files into DIR
//	-n, --numbered Prefix extracted file names with their bundle position
//
// # Examples
//
// List the bundle contents:
//
//	ca-bundle-inspect ca-bundle.pem
//
// Print every subject for scripting:
//
//	ca-bundle-inspect ca-bundle.pem -p subject
//
// Extract numbered PEM files:
//
//	ca-bundle-inspect ca-bundle.pem -d certs/ -n
package main
