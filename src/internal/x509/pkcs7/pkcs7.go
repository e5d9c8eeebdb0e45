// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509pkcs7

import (
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudflare/cfssl/crypto/pkcs7"

	"github.com/gopki/ca-bundle-crawler/src/internal/helper/gc"
	x509certs "github.com/gopki/ca-bundle-crawler/src/internal/x509/certs"
)

var (
	// ErrMalformedPKCS7 indicates data that is not a usable PKCS7
	// SignedData container in any accepted wrapping.
	ErrMalformedPKCS7 = errors.New("x509pkcs7: malformed PKCS7 container")

	// ErrNoCertificates indicates a well-formed container whose
	// certificate set is absent or empty.
	ErrNoCertificates = errors.New("x509pkcs7: no certificates in PKCS7 container")
)

// oidSignedData is the signed-data content type (1.2.840.113549.1.7.2).
var oidSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}

// pemBlockTypes are the armor labels repository tooling uses for PKCS7
// payloads.
var pemBlockTypes = map[string]bool{
	"PKCS7":               true,
	"PKCS #7 SIGNED DATA": true,
	"CMS":                 true,
}

// contentInfo mirrors the outer ContentInfo wrapper. The content stays
// raw; it is unwrapped only after the content type checks out.
type contentInfo struct {
	ContentType asn1.ObjectIdentifier
	Content     asn1.RawValue `asn1:"explicit,optional,tag:0"`
}

// signedData mirrors the SignedData layout loosely enough to survive
// degenerate certs-only containers. Every trailing field is optional and
// raw: absent elements leave their raw value zeroed, so the certificates
// field is verified by tag after the fact.
type signedData struct {
	Version          int
	DigestAlgorithms asn1.RawValue
	ContentInfo      asn1.RawValue
	Certificates     asn1.RawValue `asn1:"optional,tag:0"`
	CRLs             asn1.RawValue `asn1:"optional,tag:1"`
	SignerInfos      asn1.RawValue `asn1:"optional"`
}

// Splitter splits PKCS7 certificate containers into individual PEM blobs.
type Splitter struct {
	decoder *x509certs.Certificate
}

// New returns a ready-to-use Splitter.
func New() *Splitter {
	return &Splitter{decoder: x509certs.New()}
}

// Split returns the member certificates of a PKCS7 SignedData container
// as individual PEM blobs, preserving container order.
//
// Input may be binary DER, a PEM block with one of the accepted armor
// labels, or loosely formatted Base64 text. Containers without a
// certificate set return ErrNoCertificates; anything structurally broken
// at the container level returns ErrMalformedPKCS7.
func (s *Splitter) Split(data []byte) ([][]byte, error) {
	der, err := s.derBytes(data)
	if err != nil {
		return nil, err
	}

	// Cloudflare's parser understands the common container layouts,
	// including those carrying a CRL set.
	if p, err := pkcs7.ParsePKCS7(der); err == nil {
		members := p.Content.SignedData.Certificates
		if len(members) == 0 {
			return nil, ErrNoCertificates
		}

		blobs := make([][]byte, 0, len(members))
		for _, cert := range members {
			blobs = append(blobs, s.decoder.EncodePEM(cert))
		}
		return blobs, nil
	}

	// Walk the layout directly when the full parse fails. This covers
	// degenerate container variants and keeps sibling members usable
	// when one member fails certificate parsing.
	return s.splitDegenerate(der)
}

// derBytes unwraps PEM or loose Base64 input down to container DER.
func (s *Splitter) derBytes(data []byte) ([]byte, error) {
	if block, _ := pem.Decode(data); block != nil {
		if !pemBlockTypes[block.Type] {
			return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrMalformedPKCS7, block.Type)
		}
		return block.Bytes, nil
	}

	if !textual(data) {
		return data, nil
	}

	return s.reformat(data)
}

// reformat rebuilds canonical armor around a loose Base64 payload and
// retries the PEM decode exactly once. Armor fragments and irregular
// whitespace are dropped.
func (s *Splitter) reformat(data []byte) ([]byte, error) {
	var payload []byte
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-----") {
			continue
		}
		for _, field := range strings.Fields(line) {
			payload = append(payload, field...)
		}
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: no base64 payload found", ErrMalformedPKCS7)
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	buf.WriteString("-----BEGIN PKCS7-----\n")
	for len(payload) > 0 {
		n := min(64, len(payload))
		buf.Write(payload[:n])
		buf.WriteByte('\n')
		payload = payload[n:]
	}
	buf.WriteString("-----END PKCS7-----\n")

	block, _ := pem.Decode(buf.Bytes())
	if block == nil {
		return nil, fmt.Errorf("%w: reformatted payload failed to decode", ErrMalformedPKCS7)
	}

	return block.Bytes, nil
}

// splitDegenerate walks a certs-only SignedData layout directly.
func (s *Splitter) splitDegenerate(der []byte) ([][]byte, error) {
	var outer contentInfo
	if _, err := asn1.Unmarshal(der, &outer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPKCS7, err)
	}
	if !outer.ContentType.Equal(oidSignedData) {
		return nil, fmt.Errorf("%w: content type %v is not signed-data", ErrMalformedPKCS7, outer.ContentType)
	}

	var signed signedData
	if _, err := asn1.Unmarshal(outer.Content.Bytes, &signed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPKCS7, err)
	}
	if signed.Certificates.Class != asn1.ClassContextSpecific || signed.Certificates.Tag != 0 {
		return nil, ErrNoCertificates
	}

	var blobs [][]byte
	rest := signed.Certificates.Bytes
	for len(rest) > 0 {
		var member asn1.RawValue
		tail, err := asn1.Unmarshal(rest, &member)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPKCS7, err)
		}

		blobs = append(blobs, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: member.FullBytes}))
		rest = tail
	}
	if len(blobs) == 0 {
		return nil, ErrNoCertificates
	}

	return blobs, nil
}

// textual reports whether data is printable text rather than raw DER.
func textual(data []byte) bool {
	for _, b := range data {
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b < 0x7F) {
			continue
		}
		return false
	}
	return true
}
