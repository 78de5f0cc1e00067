package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const chromeMacUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.6367.60 Safari/537.36"

func TestParseUA(t *testing.T) {
	ua := parseUA(chromeMacUA)
	if ua.Browser != "Chrome" {
		t.Errorf("Browser = %q", ua.Browser)
	}
	if ua.OS != "macOS" {
		t.Errorf("OS = %q", ua.OS)
	}
	if ua.Device != "Desktop" {
		t.Errorf("Device = %q", ua.Device)
	}
	if ua.IsBot {
		t.Error("IsBot = true for regular Chrome UA")
	}
}

func TestParseUADetectsBot(t *testing.T) {
	ua := parseUA("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	if !ua.IsBot {
		t.Error("Googlebot not flagged as bot")
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:4444"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := clientIP(r).String(); got != "203.0.113.9" {
		t.Fatalf("clientIP = %s", got)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.7:5555"

	if got := clientIP(r).String(); got != "198.51.100.7" {
		t.Fatalf("clientIP = %s", got)
	}
}

func TestEnrichAttachesInfo(t *testing.T) {
	var seen *Info
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/about", nil)
	r.Header.Set("User-Agent", chromeMacUA)
	r.RemoteAddr = "198.51.100.7:5555"
	h.ServeHTTP(httptest.NewRecorder(), r)

	if seen == nil {
		t.Fatal("Info missing from context")
	}
	if seen.UA.Browser != "Chrome" {
		t.Errorf("Browser = %q", seen.UA.Browser)
	}
	if seen.Geo.IP == nil || seen.Geo.IP.String() != "198.51.100.7" {
		t.Errorf("Geo.IP = %v", seen.Geo.IP)
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := FromContext(r.Context()); got != nil {
		t.Fatalf("FromContext = %v, want nil", got)
	}
}
