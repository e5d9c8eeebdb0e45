// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inspect

import (
	"crypto/x509"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	x509bundle "github.com/gopki/ca-bundle-crawler/src/internal/x509/bundle"
	x509exts "github.com/gopki/ca-bundle-crawler/src/internal/x509/exts"
)

// unsafeFilename matches character runs that are replaced when deriving
// file names from certificate subjects.
var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// RenderTable renders bundle entries as a formatted markdown table with
// position, subject, issuer, expiry and subject key identifier columns.
//
// Parameters:
//   - entries: Parsed bundle entries in bundle order
//
// Returns:
//   - string: Markdown table representation of the bundle
func RenderTable(entries []x509bundle.Entry) string {
	if len(entries) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Subject", "Issuer", "Not After", "SKI"})

	var rows [][]string
	for i, entry := range entries {
		cert := entry.Cert
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			fmt.Sprintf("%x", cert.SubjectKeyId),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// FieldValue extracts a named field from a certificate for the print
// mode. Absent optional values (key identifiers, repository URI) render
// as "-" so output lines stay aligned with bundle positions.
//
// Parameters:
//   - cert: Certificate to read
//   - field: One of subject, issuer, serial, not_before, not_after,
//     ski, aki, sia (case-insensitive)
//
// Returns:
//   - string: The field value
//   - error: For an unknown field name
func FieldValue(cert *x509.Certificate, field string) (string, error) {
	switch strings.ToLower(field) {
	case "subject":
		return cert.Subject.String(), nil
	case "issuer":
		return cert.Issuer.String(), nil
	case "serial":
		return cert.SerialNumber.String(), nil
	case "not_before":
		return cert.NotBefore.UTC().Format(time.RFC3339), nil
	case "not_after":
		return cert.NotAfter.UTC().Format(time.RFC3339), nil
	case "ski":
		return orDash(fmt.Sprintf("%x", cert.SubjectKeyId)), nil
	case "aki":
		return orDash(fmt.Sprintf("%x", cert.AuthorityKeyId)), nil
	case "sia":
		uri, ok := x509exts.CARepositoryURI(cert)
		if !ok {
			return "-", nil
		}
		return uri, nil
	default:
		return "", fmt.Errorf("inspect: unknown field %q (valid: subject, issuer, serial, not_before, not_after, ski, aki, sia)", field)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// PrintField writes the named field of every entry to w, one line per
// certificate in bundle order.
func PrintField(w io.Writer, entries []x509bundle.Entry, field string) error {
	for _, entry := range entries {
		value, err := FieldValue(entry.Cert, field)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, value); err != nil {
			return err
		}
	}
	return nil
}

// Extract writes each entry as a standalone PEM file under dir, named
// after the certificate's common name with unsafe characters replaced.
// With numbered set, file names carry their bundle position as a prefix.
// Name collisions get a numeric suffix.
//
// Returns the written paths in bundle order.
func Extract(entries []x509bundle.Entry, dir string, numbered bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]int)
	var paths []string
	for i, entry := range entries {
		name := strings.Trim(unsafeFilename.ReplaceAllString(entry.Cert.Subject.CommonName, "-"), "-")
		if name == "" {
			name = fmt.Sprintf("certificate-%d", i+1)
		}
		if numbered {
			name = fmt.Sprintf("%02d-%s", i+1, name)
		}
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		path := filepath.Join(dir, name+".pem")
		if err := os.WriteFile(path, entry.PEM, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
