// Package intercept routes outbound HTTP requests for chosen hosts to
// an in-process handler instead of the network. It is the transport
// glue between client code under test and the mock provider; all
// protocol behavior lives in the handler it wraps.
package intercept

import (
	"net/http"
	"net/http/httptest"
)

// Transport is an http.RoundTripper that serves requests addressed to
// the intercepted hosts from an in-process handler and forwards
// everything else to the next round tripper.
type Transport struct {
	hosts   map[string]bool
	handler http.Handler
	next    http.RoundTripper
}

// NewTransport intercepts the given hosts with handler. Requests to
// other hosts go to next, or http.DefaultTransport when next is nil.
func NewTransport(handler http.Handler, hosts []string, next http.RoundTripper) *Transport {
	hostSet := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		hostSet[h] = true
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{
		hosts:   hostSet,
		handler: handler,
		next:    next,
	}
}

// RoundTrip implements http.RoundTripper. Intercepted requests are
// handled synchronously; the handler's output becomes the HTTP
// response. Redirect responses are returned as-is, so a client that
// wants to follow a 302 back out of the mock does so through its own
// redirect policy.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.hosts[req.URL.Host] {
		return t.next.RoundTrip(req)
	}

	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, req.Clone(req.Context()))

	resp := rec.Result()
	resp.Request = req
	return resp, nil
}
