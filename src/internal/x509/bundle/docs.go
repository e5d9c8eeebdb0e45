// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509bundle accumulates accepted CA certificates in discovery
// order and renders them as a ca-bundle file: per certificate, header
// lines naming subject, issuer and expiry, followed by the [PEM] block.
// Consumers that understand PEM ignore the header lines; they exist for
// people reading the bundle.
//
// Writes go through a temporary file renamed into place, so a failed run
// never clobbers an existing bundle.
//
// [PEM]: https://grokipedia.com/page/Privacy-Enhanced_Mail
package x509bundle
