// Package session implements the admin login cookie.  Sessions are
// stateless: the cookie value is nonce | issue-time | HMAC-SHA256, signed
// with the configured session key, so no server-side session table is
// needed and a restart does not log editors out.
package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"net/http"
	"time"
)

const (
	// CookieName is the admin session cookie.
	CookieName = "lumio_admin"

	nonceLen = 16
	rawLen   = nonceLen + 8 + sha256.Size

	// lifetime is deliberately generous; editors keep the admin open all
	// day.
	lifetime = 12 * time.Hour
)

// Manager signs and verifies admin session cookies.
type Manager struct {
	key    []byte
	secure bool // mark cookies Secure when serving over TLS
}

// New derives a Manager from the configured session key.  An empty key
// gets a random one, which still works but invalidates sessions on
// restart.
func New(key string, secure bool) *Manager {
	k := []byte(key)
	if len(k) == 0 {
		k = make([]byte, 32)
		rand.Read(k)
	}
	return &Manager{key: k, secure: secure}
}

// Issue signs a fresh session token and sets the cookie.
func (m *Manager) Issue(w http.ResponseWriter) {
	raw := make([]byte, nonceLen+8)
	rand.Read(raw[:nonceLen])
	binary.BigEndian.PutUint64(raw[nonceLen:], uint64(time.Now().Unix()))

	mac := hmac.New(sha256.New, m.key)
	mac.Write(raw)
	raw = mac.Sum(raw)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Authenticated reports whether the request carries a valid, unexpired
// session cookie.
func (m *Manager) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return m.verify(c.Value)
}

func (m *Manager) verify(token string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != rawLen {
		return false
	}

	payload, sig := raw[:nonceLen+8], raw[nonceLen+8:]
	mac := hmac.New(sha256.New, m.key)
	mac.Write(payload)
	if subtle.ConstantTimeCompare(sig, mac.Sum(nil)) != 1 {
		return false
	}

	issued := time.Unix(int64(binary.BigEndian.Uint64(payload[nonceLen:])), 0)
	age := time.Since(issued)
	if age < -time.Minute || age > lifetime {
		return false
	}
	return true
}
