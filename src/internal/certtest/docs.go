// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certtest generates throwaway CA certificates and degenerate [PKCS7]
// containers for tests. Certificates are built at runtime with controlled
// subject key identifiers, repository pointers, and certificate policies, so
// tests can assemble arbitrary repository graphs without checked-in fixtures.
//
// [PKCS7]: https://grokipedia.com/page/PKCS_7
package certtest
