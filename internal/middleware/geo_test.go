package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		lookup CountryLookup
		want   string
	}{
		{
			name: "header hint wins",
			setup: func(r *http.Request) {
				r.Header.Set("CF-IPCountry", "br")
			},
			want: "BR",
		},
		{
			name: "explicit country header",
			setup: func(r *http.Request) {
				r.Header.Set("X-Country-Code", "PT")
			},
			want: "PT",
		},
		{
			name:  "geoip fallback",
			setup: func(r *http.Request) { r.RemoteAddr = "203.0.113.1:4242" },
			lookup: func(ip string) (string, error) {
				if ip != "203.0.113.1" {
					return "", errors.New("unexpected ip")
				}
				return "br", nil
			},
			want: "BR",
		},
		{
			name:  "lookup error yields empty",
			setup: func(r *http.Request) { r.RemoteAddr = "203.0.113.1:4242" },
			lookup: func(ip string) (string, error) {
				return "", errors.New("db unavailable")
			},
			want: "",
		},
		{
			name:  "no hints no lookup",
			setup: func(r *http.Request) {},
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(req)
			if got := ResolveCountry(req, tc.lookup); got != tc.want {
				t.Fatalf("ResolveCountry() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGeoMiddlewareStoresCountry(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CountryFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-IP-Country", "br")
	rr := httptest.NewRecorder()
	Geo(nil)(next).ServeHTTP(rr, req)

	if got != "BR" {
		t.Fatalf("country in context = %q, want BR", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded for first entry",
			header:     "203.0.113.1, 198.51.100.2",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "remote addr host",
			remoteAddr: "198.51.100.10:1234",
			want:       "198.51.100.10",
		},
		{
			name:       "remote without port",
			remoteAddr: "198.51.100.10",
			want:       "198.51.100.10",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := ClientIP(req); got != tc.want {
				t.Fatalf("ClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}
