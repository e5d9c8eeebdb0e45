// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// This package contains utility functions that ensure [POSIX]-compliant behavior
// across different operating systems, particularly for executable name handling
// in CLI usage strings.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
