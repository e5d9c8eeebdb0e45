// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crawler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	x509policy "github.com/gopki/ca-bundle-crawler/src/internal/x509/policy"
)

// Stats aggregates the outcome counters of one crawl run.
type Stats struct {
	// Fetched counts every location the crawler requested, the trust
	// anchor included. FetchFailures counts the subset that could not
	// be retrieved.
	Fetched       int
	FetchFailures int

	// Accepted counts certificates admitted to the bundle. Rejected
	// counts policy rejections per reason.
	Accepted int
	Rejected map[x509policy.Reason]int

	// DecodeFailures counts payload members that were not parseable
	// certificates. DuplicateSkips counts certificates seen again at a
	// different location.
	DecodeFailures int
	DuplicateSkips int

	Elapsed time.Duration
}

func newStats() *Stats {
	return &Stats{Rejected: make(map[x509policy.Reason]int)}
}

// RejectedTotal sums rejections across all reasons.
func (s *Stats) RejectedTotal() int {
	total := 0
	for _, n := range s.Rejected {
		total += n
	}
	return total
}

// Summary returns a formatted multi-line report of the crawl outcome,
// with per-reason rejection counts in stable order.
func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crawl Statistics:\n")
	fmt.Fprintf(&b, "  Locations Fetched: %d (%d failed)\n", s.Fetched, s.FetchFailures)
	fmt.Fprintf(&b, "  Certificates Accepted: %d\n", s.Accepted)
	fmt.Fprintf(&b, "  Certificates Rejected: %d\n", s.RejectedTotal())

	reasons := make([]x509policy.Reason, 0, len(s.Rejected))
	for reason := range s.Rejected {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, reason := range reasons {
		fmt.Fprintf(&b, "    %s: %d\n", reason, s.Rejected[reason])
	}

	fmt.Fprintf(&b, "  Decode Failures: %d\n", s.DecodeFailures)
	fmt.Fprintf(&b, "  Duplicates Skipped: %d\n", s.DuplicateSkips)
	fmt.Fprintf(&b, "  Elapsed: %v", s.Elapsed)
	return b.String()
}
