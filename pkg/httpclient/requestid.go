package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID returns a middleware that tags every outgoing request with a
// unique X-Request-ID header, so client and server logs can be correlated.
// An ID already present on the request is kept.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				// Clone before mutating: RoundTrippers must not modify the
				// caller's request.
				req = req.Clone(req.Context())
				req.Header.Set("X-Request-ID", uuid.New().String())
			}
			return next.RoundTrip(req)
		})
	}
}
