package provider

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/mtakeda/plansh/internal/domain"
	"github.com/mtakeda/plansh/internal/ports"
)

// HTTPTransport is the real network adapter. Connect and total timeouts are
// fixed here; the pipeline above imposes no additional deadline.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport builds a transport with the standard timeouts.
func NewHTTPTransport() *HTTPTransport {
	dialer := &net.Dialer{Timeout: domain.ConnectTimeout}
	return &HTTPTransport{
		client: &http.Client{
			Timeout: domain.RequestTimeout,
			Transport: &http.Transport{
				DialContext: dialer.DialContext,
			},
		},
	}
}

// PostJSON implements ports.Transport. Transport-level failures come back
// wrapped in domain.ErrUnavailable so the orchestrator can trigger the echo
// fallback.
func (t *HTTPTransport) PostJSON(ctx context.Context, url string, headers map[string]string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	return resp.StatusCode, respBody.Bytes(), nil
}

var _ ports.Transport = (*HTTPTransport)(nil)
