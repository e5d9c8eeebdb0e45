// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509policy

import (
	"bytes"
	"crypto/x509"
	"encoding/asn1"
	"fmt"
	"regexp"

	x509exts "github.com/gopki/ca-bundle-crawler/src/internal/x509/exts"
)

// Reason classifies the outcome of evaluating one certificate.
type Reason int

const (
	// Accepted certificates join the bundle and are crawled further.
	Accepted Reason = iota

	// SelfSigned certificates either carry no authority key identifier
	// or one equal to their own subject key identifier. Roots other than
	// the anchor never belong in the bundle.
	SelfSigned

	// CrossCertified certificates carry the anchor's own subject key
	// identifier: another bridge or federation root re-issuing the
	// anchor's key. Following them would loop the web of trust back on
	// itself.
	CrossCertified

	// MissingRequiredPolicy certificates do not assert the required
	// certificate policy OID.
	MissingRequiredPolicy

	// ExcludedBySubject certificates match a configured subject
	// exclusion pattern.
	ExcludedBySubject
)

// String returns the human-readable form used in logs and summaries.
func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case SelfSigned:
		return "self-signed"
	case CrossCertified:
		return "cross-certified"
	case MissingRequiredPolicy:
		return "missing required policy"
	case ExcludedBySubject:
		return "excluded by subject"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Decision is the outcome of evaluating one certificate.
type Decision struct {
	Reason Reason

	// Detail supplements the reason where one value pins it down: the
	// required OID for policy misses, the matching pattern for subject
	// exclusions.
	Detail string
}

// Accepted reports whether the certificate passed every check.
func (d Decision) Accepted() bool { return d.Reason == Accepted }

// Policy holds the compiled acceptance rules for one crawl.
type Policy struct {
	// RequiredOID is the certificate policy every accepted certificate
	// must assert.
	RequiredOID asn1.ObjectIdentifier

	// Exclusions reject certificates whose RFC 2253 subject matches any
	// pattern. Plain substrings are valid patterns.
	Exclusions []*regexp.Regexp
}

// Compile builds a Policy from configuration values: a dotted-decimal
// policy OID and zero or more subject exclusion patterns compiled as
// regular expressions.
func Compile(oid string, patterns []string) (*Policy, error) {
	required, err := x509exts.ParseOID(oid)
	if err != nil {
		return nil, err
	}

	exclusions := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("x509policy: bad exclusion pattern %q: %w", pattern, err)
		}
		exclusions = append(exclusions, re)
	}

	return &Policy{RequiredOID: required, Exclusions: exclusions}, nil
}

// Evaluate classifies one discovered certificate. anchorSKI is the trust
// anchor's subject key identifier; certificates re-issuing that key are
// cross-certificates regardless of who signed them.
func (p *Policy) Evaluate(cert *x509.Certificate, anchorSKI []byte) Decision {
	if len(cert.AuthorityKeyId) == 0 || bytes.Equal(cert.AuthorityKeyId, cert.SubjectKeyId) {
		return Decision{Reason: SelfSigned}
	}

	if len(cert.SubjectKeyId) > 0 && bytes.Equal(cert.SubjectKeyId, anchorSKI) {
		return Decision{Reason: CrossCertified}
	}

	if !x509exts.HasPolicy(cert, p.RequiredOID) {
		return Decision{Reason: MissingRequiredPolicy, Detail: p.RequiredOID.String()}
	}

	subject := cert.Subject.String()
	for _, re := range p.Exclusions {
		if re.MatchString(subject) {
			return Decision{Reason: ExcludedBySubject, Detail: re.String()}
		}
	}

	return Decision{Reason: Accepted}
}
