// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or use this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBufferInterface verifies that bytebufferpool.ByteBuffer satisfies Buffer interface
func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		check func(t *testing.T, buf Buffer)
	}{
		{
			name: "Write byte slice",
			setup: func(buf Buffer) {
				buf.Write([]byte("MIIB"))
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "MIIB", buf.String())
				assert.Equal(t, 4, buf.Len())
			},
		},
		{
			name: "Mixed writes",
			setup: func(buf Buffer) {
				buf.Write([]byte("-----BEGIN"))
				buf.WriteString(" CERTIFICATE")
				buf.WriteByte('-')
			},
			check: func(t *testing.T, buf Buffer) {
				expected := "-----BEGIN CERTIFICATE-"
				assert.Equal(t, expected, buf.String())
				assert.Equal(t, []byte(expected), buf.Bytes())
				assert.Equal(t, len(expected), buf.Len())
			},
		},
		{
			name: "Set replaces contents",
			setup: func(buf Buffer) {
				buf.WriteString("initial")
				buf.Set([]byte("replaced"))
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "replaced", buf.String())
			},
		},
		{
			name: "SetString replaces contents",
			setup: func(buf Buffer) {
				buf.WriteString("initial")
				buf.SetString("new content")
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "new content", buf.String())
			},
		},
		{
			name: "Reset clears buffer",
			setup: func(buf Buffer) {
				buf.WriteString("data to clear")
				buf.Reset()
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, 0, buf.Len(), "Reset() failed, buffer still contains data: %q", buf.Bytes())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			tt.check(t, buf)
		})
	}
}

// TestBufferReadFrom verifies ReadFrom functionality against payloads of
// the sizes a crawl typically downloads
func TestBufferReadFrom(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantLen int64
	}{
		{
			name:    "Small payload",
			data:    "certificate bytes",
			wantLen: 17,
		},
		{
			name:    "Empty reader",
			data:    "",
			wantLen: 0,
		},
		{
			name:    "Large payload (10KB)",
			data:    strings.Repeat("0123456789", 1024),
			wantLen: 10240,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			reader := strings.NewReader(tt.data)
			n, err := buf.ReadFrom(reader)
			require.NoError(t, err, "ReadFrom() should not return error")

			assert.Equal(t, tt.wantLen, n, "ReadFrom() read bytes")
			assert.Equal(t, tt.data, buf.String(), "ReadFrom() result")
		})
	}
}

// TestBufferReadFromError verifies ReadFrom surfaces reader errors
func TestBufferReadFromError(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	errReader := &errorReader{err: io.ErrUnexpectedEOF}

	_, err := buf.ReadFrom(errReader)
	require.Error(t, err, "ReadFrom should return error from reader")
	assert.Equal(t, io.ErrUnexpectedEOF, err, "ReadFrom error")
}

// TestBufferWriteTo verifies draining a pooled buffer into a writer
func TestBufferWriteTo(t *testing.T) {
	buf := Default.Get()

	data := strings.Repeat("subject=CN=Example CA\n", 8)
	buf.WriteString(data)

	var output bytes.Buffer
	n, err := buf.WriteTo(&output)
	require.NoError(t, err, "WriteTo() error")

	assert.Equal(t, int64(len(data)), n, "WriteTo() wrote bytes")
	assert.Equal(t, data, output.String(), "WriteTo() output")

	// Return to pool only after all assertions complete
	buf.Reset()
	Default.Put(buf)
}

// TestPoolGetPut verifies pool Get/Put operations
func TestPoolGetPut(t *testing.T) {
	buf1 := Default.Get()
	require.NotNil(t, buf1, "Get() returned nil buffer")

	buf1.WriteString("test data")
	assert.Equal(t, 9, buf1.Len(), "WriteString() length")
	buf1.Reset()
	assert.Equal(t, 0, buf1.Len(), "Reset() failed")

	// Return to pool (buf1 must not be accessed after this)
	Default.Put(buf1)

	buf2 := Default.Get()
	require.NotNil(t, buf2, "Get() returned nil buffer after Put()")

	// Buffers are reset before Put, so a fresh Get must come back empty
	assert.Equal(t, 0, buf2.Len(), "Buffer from pool should be empty")

	buf2.Reset()
	Default.Put(buf2)
}

// TestPoolConcurrentUse verifies the pool is safe for concurrent use
func TestPoolConcurrentUse(t *testing.T) {
	const goroutines = 100
	const iterations = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				buf := Default.Get()

				buf.WriteString("download #")
				buf.WriteByte(byte('0' + (id % 10)))

				assert.GreaterOrEqual(t, buf.Len(), 10, "Buffer should hold the written bytes")

				buf.Reset()
				Default.Put(buf)
			}
		}(i)
	}

	wg.Wait()
}

// TestPoolPutNonByteBuffer verifies Put handles non-ByteBuffer types gracefully
func TestPoolPutNonByteBuffer(t *testing.T) {
	mockBuf := &mockBuffer{buf: bytes.NewBuffer(nil)}
	Default.Put(mockBuf)
}

// TestPoolInterfaceImplementation verifies pool type implements Pool interface
func TestPoolInterfaceImplementation(t *testing.T) {
	var _ Pool = &pool{}
	var _ Pool = Default
}
