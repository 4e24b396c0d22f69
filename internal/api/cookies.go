// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"

	"github.com/morganforge/avocoach-tui/internal/util"
)

// =============================================================================
// PERSISTENT COOKIE JAR
// =============================================================================

// PersistentJar is an http.CookieJar that persists the backend's session
// cookies to disk, so a login survives client restarts the same way a
// browser session does. Only cookies for the configured backend host are
// persisted; everything else stays in memory.
type PersistentJar struct {
	mu    sync.Mutex
	inner *cookiejar.Jar
	path  string
	base  *url.URL
}

// storedCookie is the on-disk representation. Session cookies carry no
// expiry on the wire, so name/value is all there is to keep.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewPersistentJar creates a jar backed by the file at path, scoped to the
// given backend base URL, and loads any previously saved cookies.
func NewPersistentJar(path string, base *url.URL) (*PersistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	j := &PersistentJar{inner: inner, path: path, base: base}
	j.load()
	return j, nil
}

// Cookies implements http.CookieJar.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// SetCookies implements http.CookieJar. Cookies set for the backend host
// are flushed to disk immediately.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	if u.Host == j.base.Host {
		j.save()
	}
}

// Clear drops all cookies and removes the persisted file. Called on logout.
func (j *PersistentJar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := cookiejar.New(nil)
	if err == nil {
		j.inner = inner
	}
	if j.path != "" {
		os.Remove(j.path)
	}
}

// load restores cookies from disk. Missing or corrupt files are ignored:
// the user just has to log in again.
func (j *PersistentJar) load() {
	if j.path == "" {
		return
	}
	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	j.inner.SetCookies(j.base, cookies)
}

// save writes the backend's cookies to disk. Caller holds the mutex.
func (j *PersistentJar) save() {
	if j.path == "" {
		return
	}
	cookies := j.inner.Cookies(j.base)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return
	}
	// Session cookies are credentials: keep the file private.
	util.AtomicWriteFile(j.path, data, 0600)
}
