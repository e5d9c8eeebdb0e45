// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"io"
	"log"
	"os"
)

// Logger is the user-facing output sink for the bundle commands. Progress
// lines, crawl summaries, and inspection tables all go through it, which
// lets tests capture or silence CLI output without touching os.Stdout.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package with
// timestamps disabled, keeping bundle progress output human-readable.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a logger writing to stdout without timestamps or
// prefixes. Diagnostic crawl output uses the cfssl log package instead;
// this logger is only for the lines an operator is meant to read.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }
