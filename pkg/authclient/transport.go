package authclient

import (
	"fmt"
	"net/http"
)

// APIError is the normalized form of a non-2xx response: the server-reported
// message when the envelope carried one, else a generic status message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// transport injects the bearer token into every outbound request and applies
// the global 401 policy: the store is cleared and the unauthorized hook fires
// no matter which request triggered the response.
type transport struct {
	store          TokenStore
	base           http.RoundTripper
	onUnauthorized func()
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.store.Get(); ok {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = t.store.Clear()
		if t.onUnauthorized != nil {
			t.onUnauthorized()
		}
	}
	return resp, nil
}
