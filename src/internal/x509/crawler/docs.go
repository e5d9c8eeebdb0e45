// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509crawler walks the CA-repository graph published through
// [X.509] Subject Information Access extensions. Starting from a trust
// anchor it drives the fetch, decode, validate and recurse loop:
//   - Fetch a queued repository location and classify the payload as a
//     PKCS7 container or a single certificate by content.
//   - Evaluate every member certificate against the crawl policy.
//   - Accept survivors into the bundle and queue their own repository
//     URIs for the next round.
//
// The frontier admits each normalized location at most once and accepted
// certificates deduplicate by content hash, so cycles and republished
// pointers terminate. Only the trust anchor is load-bearing: every
// failure past it abandons one branch and shows up in the [Stats].
//
// [X.509]: https://grokipedia.com/page/X.509
package x509crawler
