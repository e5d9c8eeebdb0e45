// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontier_FIFOOrder(t *testing.T) {
	f := newFrontier()
	assert.True(t, f.Push("http://repo.example.gov/a.p7c"))
	assert.True(t, f.Push("http://repo.example.gov/b.p7c"))
	assert.True(t, f.Push("http://repo.example.gov/c.p7c"))
	assert.Equal(t, 3, f.Len())

	for _, want := range []string{
		"http://repo.example.gov/a.p7c",
		"http://repo.example.gov/b.p7c",
		"http://repo.example.gov/c.p7c",
	} {
		got, ok := f.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := f.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_AdmitsOnce(t *testing.T) {
	f := newFrontier()
	assert.True(t, f.Push("http://repo.example.gov/a.p7c"))
	assert.False(t, f.Push("http://repo.example.gov/a.p7c"))
	assert.False(t, f.Push("HTTP://REPO.EXAMPLE.GOV/a.p7c"))
	assert.False(t, f.Push("http://repo.example.gov:80/a.p7c"))
	assert.False(t, f.Push("http://repo.example.gov/a.p7c#members"))
	assert.Equal(t, 1, f.Len())

	// Popping does not reopen admission.
	_, ok := f.Pop()
	assert.True(t, ok)
	assert.False(t, f.Push("http://repo.example.gov/a.p7c"))
}

func TestFrontier_Mark(t *testing.T) {
	f := newFrontier()
	f.Mark("http://repo.example.gov/anchor.crt")
	assert.False(t, f.Push("http://repo.example.gov/anchor.crt"))
	assert.Equal(t, 0, f.Len())
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{
			name:     "Uppercase Scheme And Host",
			location: "HTTP://Repo.Example.GOV/fcpca/fcpcag2.crt",
			want:     "http://repo.example.gov/fcpca/fcpcag2.crt",
		},
		{
			name:     "Default HTTP Port",
			location: "http://repo.example.gov:80/a.p7c",
			want:     "http://repo.example.gov/a.p7c",
		},
		{
			name:     "Default HTTPS Port",
			location: "https://repo.example.gov:443/a.p7c",
			want:     "https://repo.example.gov/a.p7c",
		},
		{
			name:     "Default FTP Port",
			location: "ftp://repo.example.gov:21/a.p7c",
			want:     "ftp://repo.example.gov/a.p7c",
		},
		{
			name:     "Non Default Port Kept",
			location: "http://repo.example.gov:8080/a.p7c",
			want:     "http://repo.example.gov:8080/a.p7c",
		},
		{
			name:     "Fragment Dropped",
			location: "http://repo.example.gov/a.p7c#members",
			want:     "http://repo.example.gov/a.p7c",
		},
		{
			name:     "Query Kept",
			location: "http://repo.example.gov/a.p7c?v=2",
			want:     "http://repo.example.gov/a.p7c?v=2",
		},
		{
			name:     "Empty Path",
			location: "http://repo.example.gov",
			want:     "http://repo.example.gov/",
		},
		{
			name:     "Relative File Path",
			location: "./certs/../certs/anchor.crt",
			want:     "certs/anchor.crt",
		},
		{
			name:     "Drive Letter Path",
			location: "C:/certs/anchor.crt",
			want:     "C:/certs/anchor.crt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalKey(tt.location))
		})
	}
}
