// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509exts

import (
	"crypto/x509"
	"encoding/asn1"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// OIDSubjectInfoAccess is the Subject Information Access extension
	// (1.3.6.1.5.5.7.1.11).
	OIDSubjectInfoAccess = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 1, 11}

	// OIDCARepository is the CA Repository access method
	// (1.3.6.1.5.5.7.48.5).
	OIDCARepository = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 5}

	// OIDCertificatePolicies is the Certificate Policies extension
	// (2.5.29.32).
	OIDCertificatePolicies = asn1.ObjectIdentifier{2, 5, 29, 32}
)

// ErrInvalidOID reports a dotted-decimal string that does not form an
// object identifier.
var ErrInvalidOID = errors.New("x509exts: invalid object identifier")

// generalNameURI is the context tag of the uniformResourceIdentifier
// choice of GeneralName.
const generalNameURI = 6

// accessDescription mirrors one AccessDescription of the SIA sequence.
// The location stays raw so the GeneralName choice tag can be inspected
// without a full GeneralName decoder.
type accessDescription struct {
	Method   asn1.ObjectIdentifier
	Location asn1.RawValue
}

// policyInformation mirrors one PolicyInformation of the Certificate
// Policies sequence. Qualifiers are never inspected.
type policyInformation struct {
	Policy     asn1.ObjectIdentifier
	Qualifiers asn1.RawValue `asn1:"optional"`
}

// Info is the per-certificate crawl-relevant extension summary.
type Info struct {
	// RepositoryURI is the first CA Repository URI of the SIA extension,
	// empty when the certificate publishes none.
	RepositoryURI string

	// HasRequiredPolicy reports whether the required policy OID appears in
	// the Certificate Policies extension.
	HasRequiredPolicy bool
}

// CARepositoryURI returns the first CA Repository URI published in the
// certificate's Subject Information Access extension.
//
// Only http(s) URIs count; other GeneralName choices and other access
// methods are skipped. A missing or undecodable extension yields
// ("", false), never an error.
func CARepositoryURI(cert *x509.Certificate) (string, bool) {
	value, ok := findExtension(cert, OIDSubjectInfoAccess)
	if !ok {
		return "", false
	}

	var descriptions []accessDescription
	if _, err := asn1.Unmarshal(value, &descriptions); err != nil {
		return "", false
	}

	for _, desc := range descriptions {
		if !desc.Method.Equal(OIDCARepository) {
			continue
		}
		if desc.Location.Class != asn1.ClassContextSpecific || desc.Location.Tag != generalNameURI {
			continue
		}

		uri := string(desc.Location.Bytes)
		if strings.HasPrefix(uri, "http") {
			return uri, true
		}
	}

	return "", false
}

// HasPolicy reports whether the certificate asserts the given policy OID
// in its Certificate Policies extension. A missing or undecodable
// extension yields false, never an error.
func HasPolicy(cert *x509.Certificate, oid asn1.ObjectIdentifier) bool {
	value, ok := findExtension(cert, OIDCertificatePolicies)
	if !ok {
		return false
	}

	var policies []policyInformation
	if _, err := asn1.Unmarshal(value, &policies); err != nil {
		return false
	}

	for _, p := range policies {
		if p.Policy.Equal(oid) {
			return true
		}
	}

	return false
}

// Collect computes the crawl-relevant extension summary in one pass.
func Collect(cert *x509.Certificate, requiredOID asn1.ObjectIdentifier) Info {
	uri, _ := CARepositoryURI(cert)
	return Info{
		RepositoryURI:     uri,
		HasRequiredPolicy: HasPolicy(cert, requiredOID),
	}
}

// ParseOID converts a dotted-decimal string such as
// "2.16.840.1.101.3.2.1.3.13" into an object identifier.
func ParseOID(s string) (asn1.ObjectIdentifier, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOID, s)
	}

	oid := make(asn1.ObjectIdentifier, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOID, s)
		}
		oid = append(oid, n)
	}

	return oid, nil
}

func findExtension(cert *x509.Certificate, oid asn1.ObjectIdentifier) ([]byte, bool) {
	for _, ext := range cert.Extensions {
		if ext.Id.Equal(oid) {
			return ext.Value, true
		}
	}
	return nil, false
}
