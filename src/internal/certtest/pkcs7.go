// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certtest

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	oidSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}
	oidData       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 1}
)

// PKCS7Options control the exact container layout.
type PKCS7Options struct {
	// OmitCRLs leaves out the optional crls element entirely, the layout
	// some repository tooling emits for certs-only containers.
	OmitCRLs bool
}

// innerContent is the nested ContentInfo of a degenerate SignedData,
// carrying the data content type OID and nothing else.
type innerContent struct {
	ContentType asn1.ObjectIdentifier
}

// container is the outer ContentInfo wrapper around SignedData.
type container struct {
	ContentType asn1.ObjectIdentifier
	Content     asn1.RawValue
}

// PKCS7 builds a DER-encoded degenerate certs-only SignedData container
// holding the given certificate encodings in order.
func PKCS7(t *testing.T, opts PKCS7Options, ders ...[]byte) []byte {
	t.Helper()

	// version, digestAlgorithms, then the nested ContentInfo.
	var body []byte
	body = append(body, mustMarshal(t, 1)...)
	body = append(body, emptySet(t)...)
	body = append(body, mustMarshal(t, innerContent{oidData})...)

	// certificates [0] IMPLICIT, holding the raw encodings back to back.
	body = append(body, mustMarshal(t, asn1.RawValue{
		Class:      asn1.ClassContextSpecific,
		Tag:        0,
		IsCompound: true,
		Bytes:      bytes.Join(ders, nil),
	})...)

	// crls [1] IMPLICIT, empty unless omitted outright.
	if !opts.OmitCRLs {
		body = append(body, mustMarshal(t, asn1.RawValue{
			Class:      asn1.ClassContextSpecific,
			Tag:        1,
			IsCompound: true,
		})...)
	}

	// signerInfos stays empty in a certs-only container.
	body = append(body, emptySet(t)...)

	signed := mustMarshal(t, asn1.RawValue{
		Class:      asn1.ClassUniversal,
		Tag:        asn1.TagSequence,
		IsCompound: true,
		Bytes:      body,
	})

	return mustMarshal(t, container{
		ContentType: oidSignedData,
		Content: asn1.RawValue{
			Class:      asn1.ClassContextSpecific,
			Tag:        0,
			IsCompound: true,
			Bytes:      signed,
		},
	})
}

// PKCS7PEM wraps PKCS7 output in PEM armor.
func PKCS7PEM(t *testing.T, opts PKCS7Options, ders ...[]byte) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{Type: "PKCS7", Bytes: PKCS7(t, opts, ders...)})
}

func emptySet(t *testing.T) []byte {
	t.Helper()
	return mustMarshal(t, asn1.RawValue{Class: asn1.ClassUniversal, Tag: asn1.TagSet, IsCompound: true})
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()

	b, err := asn1.Marshal(v)
	require.NoError(t, err, "asn1 marshal")
	return b
}
