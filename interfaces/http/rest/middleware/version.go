package middleware

import (
	"net/http"
	"strings"
)

// Version adds API version headers. The legacy layout is marked deprecated.
func Version(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			version := "v1"
			if strings.HasPrefix(r.URL.Path, "/api/v2") {
				version = "v2"
			}
			w.Header().Set("X-API-Version", version)
			w.Header().Set("X-API-Latest", "v2")
			w.Header().Set("X-API-Deprecated", boolString(version == "v1"))
		}
		next.ServeHTTP(w, r)
	})
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
