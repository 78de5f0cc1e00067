// internal/intake/csrf.go
//
// Stateless CSRF token utilities for the public forms.
//
// Context
// -------
// Rendered forms embed a hidden `csrf_token` input generated at render time.
// The server verifies this token on POST to ensure the request originated
// from a form it rendered.  The token is stateless:
//
//	base64url( nonce | unixMicro | HMAC_SHA256(secret, nonce+unixMicro) )
//
//   - nonce – 16 random bytes.  Prevents replay across users.
//   - unixMicro – microseconds since Unix epoch, 8 bytes, big-endian.
//   - HMAC – verifies authenticity.
//
// Validation checks the signature and ensures the timestamp is within
// MaxAge.  No server-side sessions are required.
//
// The key comes from configuration (security.csrf_key, Vault-resolvable);
// when unset a random ephemeral key is generated, which invalidates open
// forms on restart.
package intake

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"strconv"
	"sync"
	"time"
)

const (
	tokenBytes = 16 + 8 + sha256.Size // nonce + ts + sig
	maxAge     = 2 * time.Hour        // token valid window
)

var (
	keyMu   sync.RWMutex
	csrfKey []byte
)

// ConfigureCSRF installs the process-wide token key.  An empty key selects a
// random ephemeral one.  Call once during boot, before serving traffic.
func ConfigureCSRF(key string) {
	keyMu.Lock()
	defer keyMu.Unlock()
	if key != "" {
		csrfKey = []byte(key)
		return
	}
	csrfKey = make([]byte, 32)
	_, _ = rand.Read(csrfKey)
}

func secret() []byte {
	keyMu.RLock()
	k := csrfKey
	keyMu.RUnlock()
	if k == nil {
		ConfigureCSRF("")
		keyMu.RLock()
		k = csrfKey
		keyMu.RUnlock()
	}
	return k
}

// GenerateToken creates a new CSRF token.  Call once per form render.
func GenerateToken() (string, error) {
	sec := secret()

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(time.Now().UnixMicro()))

	mac := hmac.New(sha256.New, sec)
	mac.Write(nonce)
	mac.Write(ts)
	sig := mac.Sum(nil)

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, sig...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// VerifyToken returns true if tok passes HMAC and age checks.
func VerifyToken(tok string) bool {
	sec := secret()

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:16]
	tsBytes := raw[16:24]
	sig := raw[24:]

	// Timestamp window check.
	ts := binary.BigEndian.Uint64(tsBytes)
	issued := time.UnixMicro(int64(ts))
	if time.Since(issued) > maxAge || time.Until(issued) > time.Minute {
		// Future timestamp (clock skew) or older than maxAge.
		return false
	}

	mac := hmac.New(sha256.New, sec)
	mac.Write(nonce)
	mac.Write(tsBytes)
	want := mac.Sum(nil)

	return hmac.Equal(sig, want)
}

// RenderTimestamp returns the value for the hidden render_ts input.
func RenderTimestamp() string {
	return strconv.FormatInt(time.Now().UnixMicro(), 10)
}

// CheckTiming ensures the form was not submitted suspiciously fast or too
// late.  Empty string on success, user-visible message on failure.
func CheckTiming(tsRaw string) string {
	if tsRaw == "" {
		return "Timestamp missing.  Please reload the page."
	}
	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return "Bad timestamp.  Please retry."
	}
	delta := time.Since(time.UnixMicro(ts))
	switch {
	case delta < 2*time.Second:
		return "Form submitted too quickly.  Please enter the fields manually."
	case delta > 30*time.Minute:
		return "Form expired.  Please reload and submit again."
	default:
		return ""
	}
}
