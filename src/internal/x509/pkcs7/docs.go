// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509pkcs7 splits degenerate [PKCS7] SignedData containers into
// their member certificates. Federal PKI repositories publish CA bundles
// as certs-only `.p7c`/`.p7b` files; this package accepts those in binary
// DER, PEM armor, or loosely formatted Base64, and yields the members as
// individual PEM blobs in container order.
//
// Splitting never validates the members. A structurally broken member is
// still yielded as its own blob so callers can skip exactly that one.
//
// [PKCS7]: https://grokipedia.com/page/PKCS_7
package x509pkcs7
