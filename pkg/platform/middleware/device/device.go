// Package device derives a short human-readable device label from the
// User-Agent. The label is stored on attendance records captured by check-in.
package device

import (
	"fmt"
	"net/http"

	"github.com/mssola/useragent"

	"roster/pkg/requestcontext"
)

const unknownDevice = "Unknown device"

// Middleware stores the device label of the caller in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithDevice(r.Context(), Label(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Label renders e.g. "Chrome 120 on Android" or "Firefox 121 on Linux".
func Label(userAgent string) string {
	if userAgent == "" {
		return unknownDevice
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		name, _ := ua.Browser()
		if name == "" {
			return "Bot"
		}
		return "Bot (" + name + ")"
	}

	name, version := ua.Browser()
	os := ua.OSInfo().Name
	if name == "" && os == "" {
		return unknownDevice
	}

	browser := name
	if major := majorVersion(version); major != "" {
		browser = fmt.Sprintf("%s %s", name, major)
	}
	switch {
	case os == "":
		return browser
	case name == "":
		return os
	default:
		return browser + " on " + os
	}
}

func majorVersion(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] == '.' {
			return v[:i]
		}
	}
	return v
}
