// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509exts_test

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopki/ca-bundle-crawler/src/internal/certtest"
	x509exts "github.com/gopki/ca-bundle-crawler/src/internal/x509/exts"
)

const testPolicyOID = "2.16.840.1.101.3.2.1.3.13"

func TestCARepositoryURI(t *testing.T) {
	tests := []struct {
		name      string
		cert      func(t *testing.T) *x509.Certificate
		expectURI string
		expectOK  bool
	}{
		{
			name: "HTTP Repository URI",
			cert: func(t *testing.T) *x509.Certificate {
				ca := certtest.NewRootCA(t, certtest.Options{
					CommonName: "GoPKI Test Root CA",
					SKI:        []byte{1},
					SIAURL:     "http://repo.example.test/root.p7c",
				})
				return ca.Cert
			},
			expectURI: "http://repo.example.test/root.p7c",
			expectOK:  true,
		},
		{
			name: "HTTPS Repository URI",
			cert: func(t *testing.T) *x509.Certificate {
				ca := certtest.NewRootCA(t, certtest.Options{
					CommonName: "GoPKI Test Root CA",
					SKI:        []byte{1},
					SIAURL:     "https://repo.example.test/root.p7c",
				})
				return ca.Cert
			},
			expectURI: "https://repo.example.test/root.p7c",
			expectOK:  true,
		},
		{
			name: "No SIA Extension",
			cert: func(t *testing.T) *x509.Certificate {
				ca := certtest.NewRootCA(t, certtest.Options{
					CommonName: "GoPKI Test Root CA",
					SKI:        []byte{1},
				})
				return ca.Cert
			},
			expectURI: "",
			expectOK:  false,
		},
		{
			name: "Non-HTTP URI Skipped",
			cert: func(t *testing.T) *x509.Certificate {
				ca := certtest.NewRootCA(t, certtest.Options{
					CommonName: "GoPKI Test Root CA",
					SKI:        []byte{1},
					SIAURL:     "ldap://directory.example.test/cn=Root",
				})
				return ca.Cert
			},
			expectURI: "",
			expectOK:  false,
		},
		{
			name: "Undecodable Extension Value",
			cert: func(t *testing.T) *x509.Certificate {
				return &x509.Certificate{
					Extensions: []pkix.Extension{
						{Id: x509exts.OIDSubjectInfoAccess, Value: []byte{0xFF, 0x00}},
					},
				}
			},
			expectURI: "",
			expectOK:  false,
		},
		{
			name: "Non-URI GeneralName Skipped",
			cert: func(t *testing.T) *x509.Certificate {
				// CA Repository access method with a directoryName location
				// (context tag 4) instead of a URI.
				value := mustMarshal(t, []accessDescription{
					{
						Method: x509exts.OIDCARepository,
						Location: asn1.RawValue{
							Class:      asn1.ClassContextSpecific,
							Tag:        4,
							IsCompound: true,
						},
					},
				})
				return &x509.Certificate{
					Extensions: []pkix.Extension{
						{Id: x509exts.OIDSubjectInfoAccess, Value: value},
					},
				}
			},
			expectURI: "",
			expectOK:  false,
		},
		{
			name: "Other Access Method Skipped",
			cert: func(t *testing.T) *x509.Certificate {
				// timeStamping access method (1.3.6.1.5.5.7.48.3) only.
				value := mustMarshal(t, []accessDescription{
					{
						Method: asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 3},
						Location: asn1.RawValue{
							Class: asn1.ClassContextSpecific,
							Tag:   6,
							Bytes: []byte("http://tsa.example.test"),
						},
					},
				})
				return &x509.Certificate{
					Extensions: []pkix.Extension{
						{Id: x509exts.OIDSubjectInfoAccess, Value: value},
					},
				}
			},
			expectURI: "",
			expectOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, ok := x509exts.CARepositoryURI(tt.cert(t))

			assert.Equal(t, tt.expectOK, ok, "CARepositoryURI() ok mismatch")
			assert.Equal(t, tt.expectURI, uri, "CARepositoryURI() uri mismatch")
		})
	}
}

func TestHasPolicy(t *testing.T) {
	required := certtest.MustOID(t, testPolicyOID)

	tests := []struct {
		name     string
		cert     func(t *testing.T) *x509.Certificate
		expected bool
	}{
		{
			name: "Required Policy Present",
			cert: func(t *testing.T) *x509.Certificate {
				ca := certtest.NewRootCA(t, certtest.Options{
					CommonName: "GoPKI Test Root CA",
					SKI:        []byte{1},
					Policies:   []string{"2.16.840.1.101.3.2.1.3.7", testPolicyOID},
				})
				return ca.Cert
			},
			expected: true,
		},
		{
			name: "Only Other Policies",
			cert: func(t *testing.T) *x509.Certificate {
				ca := certtest.NewRootCA(t, certtest.Options{
					CommonName: "GoPKI Test Root CA",
					SKI:        []byte{1},
					Policies:   []string{"2.16.840.1.101.3.2.1.3.7"},
				})
				return ca.Cert
			},
			expected: false,
		},
		{
			name: "No Policies Extension",
			cert: func(t *testing.T) *x509.Certificate {
				ca := certtest.NewRootCA(t, certtest.Options{
					CommonName: "GoPKI Test Root CA",
					SKI:        []byte{1},
				})
				return ca.Cert
			},
			expected: false,
		},
		{
			name: "Undecodable Extension Value",
			cert: func(t *testing.T) *x509.Certificate {
				return &x509.Certificate{
					Extensions: []pkix.Extension{
						{Id: x509exts.OIDCertificatePolicies, Value: []byte{0xFF}},
					},
				}
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, x509exts.HasPolicy(tt.cert(t), required), "HasPolicy() mismatch")
		})
	}
}

func TestCollect(t *testing.T) {
	required := certtest.MustOID(t, testPolicyOID)

	ca := certtest.NewRootCA(t, certtest.Options{
		CommonName: "GoPKI Test Root CA",
		SKI:        []byte{1},
		SIAURL:     "http://repo.example.test/root.p7c",
		Policies:   []string{testPolicyOID},
	})

	info := x509exts.Collect(ca.Cert, required)
	assert.Equal(t, "http://repo.example.test/root.p7c", info.RepositoryURI, "expected repository URI")
	assert.True(t, info.HasRequiredPolicy, "expected required policy")

	bare := certtest.NewRootCA(t, certtest.Options{CommonName: "GoPKI Bare Root", SKI: []byte{2}})
	info = x509exts.Collect(bare.Cert, required)
	assert.Empty(t, info.RepositoryURI, "expected no repository URI")
	assert.False(t, info.HasRequiredPolicy, "expected no required policy")
}

func TestParseOID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  asn1.ObjectIdentifier
		expectErr bool
	}{
		{
			name:     "Common Authentication Policy",
			input:    testPolicyOID,
			expected: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 2, 1, 3, 13},
		},
		{
			name:     "Whitespace Trimmed",
			input:    "  1.3.6.1.5.5.7.48.5\n",
			expected: asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 5},
		},
		{
			name:      "Empty String",
			input:     "",
			expectErr: true,
		},
		{
			name:      "Single Arc",
			input:     "2",
			expectErr: true,
		},
		{
			name:      "Non-Numeric Arc",
			input:     "1.3.x.1",
			expectErr: true,
		},
		{
			name:      "Negative Arc",
			input:     "1.-3.6",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oid, err := x509exts.ParseOID(tt.input)

			if tt.expectErr {
				require.Error(t, err, "expected error")
				assert.ErrorIs(t, err, x509exts.ErrInvalidOID, "expected ErrInvalidOID")
				return
			}

			require.NoError(t, err, "ParseOID() error")
			assert.True(t, oid.Equal(tt.expected), "ParseOID() result mismatch")
		})
	}
}

// accessDescription mirrors the SIA entry layout for fabricating
// extension values the library under test must skip.
type accessDescription struct {
	Method   asn1.ObjectIdentifier
	Location asn1.RawValue
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()

	b, err := asn1.Marshal(v)
	require.NoError(t, err, "asn1 marshal")
	return b
}
