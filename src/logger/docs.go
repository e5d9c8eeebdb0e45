// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for user-facing logging.
// It defines the Logger interface and a CLILogger implementation for human-readable
// command-line output. Diagnostic logging (debug traces of skipped certificates,
// fetch retries, cache activity) is handled separately by the leveled
// [cfssl log] package; this package covers only what the user is meant to read.
//
// [cfssl log]: https://github.com/cloudflare/cfssl/tree/master/log
package logger
