// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gopki/ca-bundle-crawler/src/inspect"
	"github.com/gopki/ca-bundle-crawler/src/logger"
	verpkg "github.com/gopki/ca-bundle-crawler/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

// Inspection runs are short, so the signal context is enough here.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewCLILogger()
	if err := inspect.Execute(ctx, version, log); err != nil {
		log.Printf("CLI execution failed: %v", err)
		os.Exit(1)
	}
}
