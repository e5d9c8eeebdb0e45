// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads crawler settings from [JSON] or [YAML] files with
// sane defaults for the public Federal PKI repository. Values resolve in
// priority order: hardcoded defaults, then the file named by the
// CA_BUNDLE_CRAWLER_CONFIG environment variable or an explicit path, and
// finally command-line flags applied by the caller.
//
// [JSON]: https://grokipedia.com/page/JSON
// [YAML]: https://grokipedia.com/page/YAML
package config
