package client

import (
	"net/http"
	"net/http/httptest"
)

// InterceptTransport answers requests by calling Handler in-process instead of
// dialing the network.
type InterceptTransport struct {
	Handler http.Handler
}

func (t *InterceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	in := req.Clone(req.Context())
	in.RequestURI = req.URL.RequestURI()
	in.RemoteAddr = "127.0.0.1:0"
	if in.Host == "" {
		in.Host = req.URL.Host
	}
	t.Handler.ServeHTTP(rec, in)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}
