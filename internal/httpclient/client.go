// Package httpclient provides shared HTTP clients with connection pooling.
//
// Callers MUST close response bodies:
//
//	resp, err := httpclient.Default().Get(url)
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()  // Required even on non-2xx status
//
// Adapters hit a handful of hosts on every refresh cycle; sharing one
// transport keeps connections warm instead of re-dialing each cycle.
package httpclient

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// UserAgent is sent on every upstream request.
const UserAgent = "newsterm/1.0 (+https://github.com/dhowell/newsterm)"

var (
	// Shared transport for connection pooling
	sharedTransport *http.Transport
	transportOnce   sync.Once

	defaultClient *http.Client
	clientOnce    sync.Once
)

// getSharedTransport returns the shared transport with connection pooling settings.
func getSharedTransport() *http.Transport {
	transportOnce.Do(func() {
		sharedTransport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	})
	return sharedTransport
}

// Default returns the shared client with a 10 second timeout.
// Per-request deadlines still apply via request contexts; the client
// timeout is a backstop.
func Default() *http.Client {
	clientOnce.Do(func() {
		defaultClient = &http.Client{
			Transport: getSharedTransport(),
			Timeout:   10 * time.Second,
		}
	})
	return defaultClient
}

// WithTimeout returns a client on the shared transport with a custom timeout.
func WithTimeout(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: getSharedTransport(),
		Timeout:   timeout,
	}
}
