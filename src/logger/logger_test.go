// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/gopki/ca-bundle-crawler/src/logger"
	"github.com/stretchr/testify/assert"
)

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("test message: %s", "hello")

				output := buf.String()
				assert.Contains(t, output, "test message: hello", "expected output to contain 'test message: hello'")
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("test", "message")

				output := buf.String()
				assert.Contains(t, output, "test message", "expected output to contain 'test message'")
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewCLILogger()

				log.SetOutput(&buf1)
				log.Println("first")

				log.SetOutput(&buf2)
				log.Println("second")

				assert.Contains(t, buf1.String(), "first", "expected buf1 to contain 'first'")
				assert.Contains(t, buf2.String(), "second", "expected buf2 to contain 'second'")
				assert.NotContains(t, buf1.String(), "second", "buf1 should not contain 'second'")
			},
		},
		{
			name: "NewCLILogger",
			testFunc: func(t *testing.T) {
				log := logger.NewCLILogger()
				assert.NotNil(t, log, "NewCLILogger() returned nil")
			},
		},
		{
			name: "ConcurrentUsage",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				const numGoroutines = 100
				const messagesPerGoroutine = 10

				var wg sync.WaitGroup
				wg.Add(numGoroutines)

				for i := 0; i < numGoroutines; i++ {
					go func(id int) {
						defer wg.Done()
						for j := 0; j < messagesPerGoroutine; j++ {
							log.Printf("goroutine %d message %d", id, j)
						}
					}(i)
				}

				wg.Wait()

				output := buf.String()
				lines := strings.Split(strings.TrimSpace(output), "\n")

				expectedLines := numGoroutines * messagesPerGoroutine
				assert.Equal(t, expectedLines, len(lines), "expected %d log lines", expectedLines)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}
