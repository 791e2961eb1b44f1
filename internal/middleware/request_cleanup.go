package middleware

import (
	"io"
	"net/http"
)

// leftover bodies larger than this are not worth reading just to reuse the connection
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest drains what the handler left unread from the request body and closes it,
// so the keep-alive connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
