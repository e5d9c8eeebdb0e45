// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// ca-bundle-crawler is a command-line tool that builds an ordered CA
// certificate bundle by recursively crawling the CA-repository graph
// published through X.509 Subject Information Access extensions,
// starting from a trust anchor certificate.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/gopki/ca-bundle-crawler/cmd/ca-bundle-crawler@latest
//
// # Usage
//
//	ca-bundle-crawler [FLAGS]
//
// # Flags
//
//	-a, --anchor       Trust anchor certificate URL or file path
//	                   (default: the Federal Common Policy CA G2)
//	-o, --output       Bundle file to write (default: ca-bundle.pem)
//	-c, --config       Configuration file (.json, .yaml, .yml)
//	    --policy-oid   Certificate policy OID every kept certificate
//	                   must assert
//	-e, --exclude      Subject pattern to exclude (repeatable)
//	-t, --timeout      Per-request fetch timeout (default: 10s)
//	    --max-visits   Stop after fetching this many locations
//	    --workdir      Directory for downloaded artifacts
//	    --keep-workdir Keep downloaded artifacts after the run
//	-v, --verbose      Enable debug logging
//
// # Examples
//
// Build the default Federal PKI bundle:
//
//	ca-bundle-crawler -o ca-bundle.pem
//
// Crawl a different anchor and exclude email CAs:
//
//	ca-bundle-crawler -a http://repo.example.gov/root.crt \
//	  -e "DOD EMAIL CA" -o bundle.pem
//
// Run with a configuration file and keep the downloaded artifacts:
//
//	ca-bundle-crawler -c crawler.yaml --workdir ./artifacts -v
//
// Verify the output with OpenSSL:
//
//	openssl crl2pkcs7 -nocrl -certfile ca-bundle.pem \
//	  | openssl pkcs7 -print_certs -noout
package main
