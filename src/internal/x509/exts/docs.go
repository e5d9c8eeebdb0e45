// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509exts decodes the [X.509] extensions that drive repository
// discovery. It provides capabilities to:
//   - Extract the CA Repository URI from the Subject Information Access
//     extension ([RFC 5280], section 4.2.2.2).
//   - Test a certificate for membership of a required certificate policy.
//   - Parse dotted-decimal object identifiers from configuration values.
//
// Extraction is strictly read-only: a certificate without the extension, or
// with an undecodable value, simply yields nothing. Callers decide whether
// that stops a crawl branch.
//
// [X.509]: https://grokipedia.com/page/X.509
// [RFC 5280]: https://www.rfc-editor.org/rfc/rfc5280
package x509exts
