// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package fetch retrieves certificate material from the locations a
// trust-chain crawl encounters: local paths, HTTP(S) repository URLs and
// FTP repository URLs. It provides capabilities to:
//   - Fetch any location through one [Fetcher] interface with
//     context-aware cancellation.
//   - Reuse a lazily built HTTP client with configurable timeout and
//     User-Agent.
//   - Cache downloads on disk inside the crawl working directory, with
//     If-Modified-Since revalidation against [HTTP 304] responses.
//
// Downloads stream through the gc buffer pool and are capped in size, so
// a misbehaving repository cannot balloon memory.
//
// [HTTP 304]: https://grokipedia.com/page/HTTP_304
package fetch
