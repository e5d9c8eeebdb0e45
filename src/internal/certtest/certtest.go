// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certtest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	oidSubjectInfoAccess   = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 1, 11}
	oidCARepository        = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 5}
	oidCertificatePolicies = asn1.ObjectIdentifier{2, 5, 29, 32}
)

// Options control the shape of a generated certificate.
type Options struct {
	CommonName string
	SKI        []byte   // subject key identifier; certificates that issue others need one
	SIAURL     string   // CA Repository URI placed in the SIA extension, if set
	Policies   []string // dotted certificate policy OIDs
	SelfAKI    bool     // write an AKI equal to the certificate's own SKI (roots only)
	Leaf       bool     // issue a non-CA certificate
}

// CA couples a generated certificate with its signing key and encodings.
type CA struct {
	Cert *x509.Certificate
	Key  *ecdsa.PrivateKey
	DER  []byte
	PEM  []byte
}

// accessDescription mirrors the SIA AccessDescription layout for marshaling.
type accessDescription struct {
	Method   asn1.ObjectIdentifier
	Location asn1.RawValue
}

// policyInformation mirrors the PolicyInformation layout, qualifiers omitted.
type policyInformation struct {
	Policy asn1.ObjectIdentifier
}

// NewRootCA generates a self-signed CA certificate.
//
// Roots built without SelfAKI carry no authority key identifier at all, which
// is the other shape self-signed detection has to recognize.
func NewRootCA(t *testing.T, opts Options) *CA {
	t.Helper()

	key := genKey(t)
	tmpl := buildTemplate(t, opts)

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err, "creating root certificate")

	return wrap(t, der, key)
}

// Issue generates a certificate signed by ca. The child's AKI is taken from
// the issuer's SKI, so passing opts.SKI equal to another certificate's SKI is
// how tests fabricate cross-certified subjects.
func (ca *CA) Issue(t *testing.T, opts Options) *CA {
	t.Helper()

	key := genKey(t)
	tmpl := buildTemplate(t, opts)

	der, err := x509.CreateCertificate(rand.Reader, tmpl, ca.Cert, &key.PublicKey, ca.Key)
	require.NoError(t, err, "issuing certificate")

	return wrap(t, der, key)
}

// MustOID parses a dotted OID string.
func MustOID(t *testing.T, s string) asn1.ObjectIdentifier {
	t.Helper()

	parts := strings.Split(s, ".")
	oid := make(asn1.ObjectIdentifier, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		require.NoError(t, err, "parsing OID component %q", p)
		oid = append(oid, n)
	}
	return oid
}

// SIAExtension builds a Subject Information Access extension holding a single
// CA Repository URI.
func SIAExtension(t *testing.T, uri string) pkix.Extension {
	t.Helper()

	der, err := asn1.Marshal([]accessDescription{{
		Method:   oidCARepository,
		Location: asn1.RawValue{Class: asn1.ClassContextSpecific, Tag: 6, Bytes: []byte(uri)},
	}})
	require.NoError(t, err, "marshaling SIA extension")

	return pkix.Extension{Id: oidSubjectInfoAccess, Value: der}
}

// PoliciesExtension builds a Certificate Policies extension from dotted OIDs.
func PoliciesExtension(t *testing.T, oids ...string) pkix.Extension {
	t.Helper()

	pis := make([]policyInformation, 0, len(oids))
	for _, s := range oids {
		pis = append(pis, policyInformation{Policy: MustOID(t, s)})
	}

	der, err := asn1.Marshal(pis)
	require.NoError(t, err, "marshaling policies extension")

	return pkix.Extension{Id: oidCertificatePolicies, Value: der}
}

func buildTemplate(t *testing.T, opts Options) *x509.Certificate {
	t.Helper()

	tmpl := &x509.Certificate{
		SerialNumber: nextSerial(t),
		Subject: pkix.Name{
			CommonName:   opts.CommonName,
			Organization: []string{"GoPKI Test"},
		},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		SubjectKeyId:          opts.SKI,
	}

	if opts.Leaf {
		tmpl.IsCA = false
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	}
	if opts.SelfAKI {
		tmpl.AuthorityKeyId = opts.SKI
	}
	if opts.SIAURL != "" {
		tmpl.ExtraExtensions = append(tmpl.ExtraExtensions, SIAExtension(t, opts.SIAURL))
	}
	if len(opts.Policies) > 0 {
		tmpl.ExtraExtensions = append(tmpl.ExtraExtensions, PoliciesExtension(t, opts.Policies...))
	}

	return tmpl
}

func genKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err, "generating ECDSA key")
	return key
}

func nextSerial(t *testing.T) *big.Int {
	t.Helper()

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	require.NoError(t, err, "generating serial number")
	return serial
}

func wrap(t *testing.T, der []byte, key *ecdsa.PrivateKey) *CA {
	t.Helper()

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err, "reparsing generated certificate")

	return &CA{
		Cert: cert,
		Key:  key,
		DER:  der,
		PEM:  pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
	}
}
