// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509policy classifies discovered CA certificates against the
// acceptance rules of a trust-chain crawl. Each certificate receives
// exactly one [Decision]: checks run in a fixed order and the first hit
// wins, so a certificate that is both self-issued and missing the
// required policy is reported as self-signed.
//
// Evaluation is a pure function of the certificate, the anchor's subject
// key identifier, and the compiled policy. The trust anchor itself never
// passes through evaluation; crawlers accept it unconditionally.
package x509policy
