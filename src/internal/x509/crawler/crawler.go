// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crawler

import (
	"context"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/log"
	"github.com/jmhodges/clock"

	"github.com/gopki/ca-bundle-crawler/src/internal/fetch"
	x509bundle "github.com/gopki/ca-bundle-crawler/src/internal/x509/bundle"
	x509certs "github.com/gopki/ca-bundle-crawler/src/internal/x509/certs"
	x509exts "github.com/gopki/ca-bundle-crawler/src/internal/x509/exts"
	x509pkcs7 "github.com/gopki/ca-bundle-crawler/src/internal/x509/pkcs7"
	x509policy "github.com/gopki/ca-bundle-crawler/src/internal/x509/policy"
)

var (
	// ErrAnchorUnreachable is returned when the trust anchor itself
	// cannot be fetched. Anything downstream of the anchor fails soft.
	ErrAnchorUnreachable = errors.New("x509crawler: trust anchor unreachable")

	// ErrAnchorUndecodable is returned when the anchor payload yields no
	// parseable certificate.
	ErrAnchorUndecodable = errors.New("x509crawler: trust anchor undecodable")

	// ErrNoAnchorSIA is returned when the anchor certificate publishes
	// no CA repository URI, leaving the crawler nowhere to go.
	ErrNoAnchorSIA = errors.New("x509crawler: trust anchor has no CA repository URI")
)

// Options configure a [Crawler].
type Options struct {
	// Fetcher retrieves repository payloads. Required.
	Fetcher fetch.Fetcher

	// Policy decides which discovered certificates enter the bundle.
	// Required.
	Policy *x509policy.Policy

	// MaxVisits caps the number of fetched locations as a runaway
	// guard. Zero means no cap.
	MaxVisits int

	// Clock supplies time for the elapsed counter. Nil selects the wall
	// clock.
	Clock clock.Clock
}

// Crawler walks the CA-repository graph from a trust anchor, collecting
// certificates that survive policy evaluation into an ordered bundle.
// A Crawler runs one crawl; build a fresh one per run.
type Crawler struct {
	fetcher   fetch.Fetcher
	policy    *x509policy.Policy
	maxVisits int
	clk       clock.Clock

	decoder  *x509certs.Certificate
	splitter *x509pkcs7.Splitter

	frontier  *frontier
	bundle    *x509bundle.Bundle
	stats     *Stats
	seenCerts map[[sha256.Size]byte]bool

	anchorSKI []byte
}

// New creates a Crawler with the given Options.
func New(opts Options) *Crawler {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Crawler{
		fetcher:   opts.Fetcher,
		policy:    opts.Policy,
		maxVisits: opts.MaxVisits,
		clk:       clk,
		decoder:   x509certs.New(),
		splitter:  x509pkcs7.New(),
		frontier:  newFrontier(),
		bundle:    x509bundle.New(),
		stats:     newStats(),
		seenCerts: make(map[[sha256.Size]byte]bool),
	}
}

// Stats returns the outcome counters of the crawl run.
func (c *Crawler) Stats() *Stats { return c.stats }

// Run crawls the repository graph rooted at anchorLocation and returns
// the bundle of accepted certificates in discovery order. The anchor
// enters the bundle without policy evaluation; every other certificate
// must survive the policy to be kept and recursed into.
//
// Only three conditions are fatal: the anchor cannot be fetched, cannot
// be decoded, or publishes no CA repository URI. Everything past the
// anchor fails soft, abandoning one branch and counting in [Stats].
//
// Parameters:
//   - ctx: Context for cancellation of the whole crawl.
//   - anchorLocation: URL or file path of the trust anchor certificate.
//
// Returns:
//   - *x509bundle.Bundle: Accepted certificates, anchor first.
//   - error: One of the anchor sentinels, or the context error.
func (c *Crawler) Run(ctx context.Context, anchorLocation string) (*x509bundle.Bundle, error) {
	start := c.clk.Now()
	defer func() { c.stats.Elapsed = c.clk.Now().Sub(start) }()

	anchor, err := c.fetchAnchor(ctx, anchorLocation)
	if err != nil {
		return nil, err
	}

	c.anchorSKI = anchor.SubjectKeyId
	c.accept(anchor)

	uri, ok := x509exts.CARepositoryURI(anchor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAnchorSIA, anchorLocation)
	}

	// The anchor location never re-enters the crawl, even when a
	// downstream certificate points back at it.
	c.frontier.Mark(anchorLocation)
	c.frontier.Push(uri)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		location, ok := c.frontier.Pop()
		if !ok {
			break
		}

		if c.maxVisits > 0 && c.stats.Fetched >= c.maxVisits {
			log.Warningf("visit cap %d reached with %d locations still queued, stopping crawl",
				c.maxVisits, c.frontier.Len()+1)
			break
		}

		c.crawlOne(ctx, location)
	}

	return c.bundle, nil
}

// fetchAnchor retrieves and decodes the trust anchor, translating
// failures into the fatal sentinels.
func (c *Crawler) fetchAnchor(ctx context.Context, location string) (*x509.Certificate, error) {
	log.Infof("fetching trust anchor from %s", location)

	c.stats.Fetched++
	data, err := c.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnchorUnreachable, err)
	}

	anchor, err := c.decoder.Decode(c.candidates(data)[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnchorUndecodable, err)
	}
	return anchor, nil
}

// crawlOne fetches a single repository location and feeds every member
// certificate through decode, dedup and policy evaluation. Failures are
// counted, logged and abandoned.
func (c *Crawler) crawlOne(ctx context.Context, location string) {
	log.Debugf("fetching %s", location)

	c.stats.Fetched++
	data, err := c.fetcher.Fetch(ctx, location)
	if err != nil {
		c.stats.FetchFailures++
		log.Warningf("abandoning %s: %v", location, err)
		return
	}

	for _, blob := range c.candidates(data) {
		cert, err := c.decoder.Decode(blob)
		if err != nil {
			c.stats.DecodeFailures++
			log.Debugf("skipping undecodable member from %s: %v", location, err)
			continue
		}

		sum := sha256.Sum256(cert.Raw)
		if c.seenCerts[sum] {
			c.stats.DuplicateSkips++
			log.Debugf("skipping duplicate %q", cert.Subject.String())
			continue
		}
		c.seenCerts[sum] = true

		decision := c.policy.Evaluate(cert, c.anchorSKI)
		if !decision.Accepted() {
			c.stats.Rejected[decision.Reason]++
			if decision.Detail != "" {
				log.Debugf("rejecting %q: %s (%s)", cert.Subject.String(), decision.Reason, decision.Detail)
			} else {
				log.Debugf("rejecting %q: %s", cert.Subject.String(), decision.Reason)
			}
			continue
		}

		c.accept(cert)
		if uri, ok := x509exts.CARepositoryURI(cert); ok && c.frontier.Push(uri) {
			log.Debugf("queued %s", uri)
		}
	}
}

// accept admits cert to the bundle and marks it seen so republished
// copies skip as duplicates.
func (c *Crawler) accept(cert *x509.Certificate) {
	c.seenCerts[sha256.Sum256(cert.Raw)] = true
	c.stats.Accepted++
	c.bundle.Add(cert)
	log.Infof("accepted %q", cert.Subject.String())
}

// candidates classifies a fetched payload by content, never by file
// name, and returns one blob per member certificate: the blocks of a
// PEM payload, the members of a PKCS7 container, or the payload itself.
func (c *Crawler) candidates(data []byte) [][]byte {
	if c.decoder.IsPEM(data) {
		if blobs := pemCertificateBlocks(data); len(blobs) > 0 {
			return blobs
		}
	}

	if blobs, err := c.splitter.Split(data); err == nil {
		return blobs
	}

	return [][]byte{data}
}

// pemCertificateBlocks re-encodes each CERTIFICATE block of a PEM
// payload as a standalone blob, skipping blocks of other types.
func pemCertificateBlocks(data []byte) [][]byte {
	var blobs [][]byte
	rest := data
	for {
		block, tail := pem.Decode(rest)
		if block == nil {
			return blobs
		}
		rest = tail
		if block.Type == "CERTIFICATE" {
			blobs = append(blobs, pem.EncodeToMemory(block))
		}
	}
}
