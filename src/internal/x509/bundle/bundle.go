// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509bundle

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	x509certs "github.com/gopki/ca-bundle-crawler/src/internal/x509/certs"
)

// ErrNoCertificates indicates bundle data with nothing in it.
var ErrNoCertificates = errors.New("x509bundle: no certificates in bundle data")

// Entry is one accepted certificate together with its PEM encoding.
type Entry struct {
	Cert *x509.Certificate
	PEM  []byte
}

// Bundle accumulates accepted certificates in discovery order.
type Bundle struct {
	entries []Entry
	encoder *x509certs.Certificate
}

// New returns an empty Bundle.
func New() *Bundle {
	return &Bundle{encoder: x509certs.New()}
}

// Add appends a certificate to the bundle.
func (b *Bundle) Add(cert *x509.Certificate) {
	b.entries = append(b.entries, Entry{Cert: cert, PEM: b.encoder.EncodePEM(cert)})
}

// Len returns the number of accepted certificates.
func (b *Bundle) Len() int { return len(b.entries) }

// Entries returns the accepted certificates in discovery order.
func (b *Bundle) Entries() []Entry { return b.entries }

// WriteTo emits the ca-bundle format: per certificate, subject, issuer
// and expiry header lines, then the PEM block.
func (b *Bundle) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, entry := range b.entries {
		n, err := fmt.Fprintf(w, "subject=%s\nissuer=%s\nnot_after=%s\n%s",
			entry.Cert.Subject.String(),
			entry.Cert.Issuer.String(),
			entry.Cert.NotAfter.UTC().Format(time.RFC3339),
			entry.PEM)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// WriteFile writes the bundle to path via a temporary file in the
// destination directory renamed into place.
func (b *Bundle) WriteFile(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("x509bundle: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = b.WriteTo(tmp); err != nil {
		return fmt.Errorf("x509bundle: write bundle: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("x509bundle: chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("x509bundle: close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("x509bundle: rename into place: %w", err)
	}
	return nil
}

// Parse re-reads bundle data. The PEM blocks are authoritative; header
// lines are display text the PEM scanner skips over.
func Parse(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoCertificates
	}

	decoder := x509certs.New()
	certs, err := decoder.DecodeMultiple(data)
	if err != nil {
		return nil, fmt.Errorf("x509bundle: %w", err)
	}

	entries := make([]Entry, 0, len(certs))
	for _, cert := range certs {
		entries = append(entries, Entry{Cert: cert, PEM: decoder.EncodePEM(cert)})
	}
	return entries, nil
}
