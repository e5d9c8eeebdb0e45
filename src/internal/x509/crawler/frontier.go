// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crawler

import (
	"net/url"
	"path/filepath"
	"strings"
)

// frontier is the crawl work queue. Locations come back out in the order
// they went in, and each normalized location is admitted at most once, so
// cycles and republished pointers cannot re-enqueue work.
type frontier struct {
	queue []string
	seen  map[string]bool
}

func newFrontier() *frontier {
	return &frontier{seen: make(map[string]bool)}
}

// Push admits location unless its normalized form was admitted before.
// It reports whether the location was queued.
func (f *frontier) Push(location string) bool {
	key := canonicalKey(location)
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	f.queue = append(f.queue, location)
	return true
}

// Mark records location as already handled without queueing it, so later
// pointers back to it are dropped.
func (f *frontier) Mark(location string) {
	f.seen[canonicalKey(location)] = true
}

// Pop removes and returns the oldest queued location.
func (f *frontier) Pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	location := f.queue[0]
	f.queue = f.queue[1:]
	return location, true
}

// Len returns the number of locations still queued.
func (f *frontier) Len() int { return len(f.queue) }

// canonicalKey normalizes a location for admission checks: URL schemes
// and hosts fold to lowercase, default ports drop, an empty path becomes
// "/", and fragments drop. Anything that does not parse as a URL (or
// looks like a Windows drive path) normalizes as a file path instead.
func canonicalKey(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return filepath.Clean(location)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	switch port := u.Port(); {
	case u.Scheme == "http" && port == "80",
		u.Scheme == "https" && port == "443",
		u.Scheme == "ftp" && port == "21":
		u.Host = u.Hostname()
	}

	if u.Path == "" {
		u.Path = "/"
	}
	u.Fragment = ""

	return u.String()
}
