// Package httpclient provides composable http.RoundTripper middleware for
// outgoing requests: request ID injection, request logging, and a stable
// User-Agent. It is the client-side sibling of the usual server middleware
// chain.
package httpclient

import "net/http"

// Middleware wraps an http.RoundTripper with additional behaviour.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to the http.RoundTripper interface.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Wrap applies the middlewares to rt in order: the first middleware becomes
// the outermost, seeing the request first. A nil rt defaults to
// http.DefaultTransport.
func Wrap(rt http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}
