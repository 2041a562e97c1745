package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ProgressFunc receives transfer progress as a 0-100 percentage. It is invoked
// inline on the transfer goroutine and must not block.
type ProgressFunc func(percent int)

// Client executes one built request and returns the fully read response.
// Retries, redirects, and timeouts are the implementation's concern; callers
// invoke Execute at most once per dispatch.
type Client interface {
	Execute(ctx context.Context, req *Request, progress ProgressFunc) (*Response, error)
}

// NetClient is the net/http-backed Client. When the request carries a body,
// progress tracks the upload; otherwise it tracks the download when the
// response length is known.
type NetClient struct {
	httpClient *http.Client
}

func NewNetClient(timeout time.Duration) *NetClient {
	return &NetClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewNetClientWith wraps an existing *http.Client.
func NewNetClientWith(hc *http.Client) *NetClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &NetClient{httpClient: hc}
}

func (c *NetClient) Execute(ctx context.Context, req *Request, progress ProgressFunc) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	var body io.Reader
	uploading := len(req.Body) > 0
	if uploading {
		body = &progressReader{
			r:        bytes.NewReader(req.Body),
			total:    int64(len(req.Body)),
			progress: progress,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("httpx: build request: %w", err)
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if uploading {
		httpReq.ContentLength = int64(len(req.Body))
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("httpx: execute: %w", err)
	}
	defer httpResp.Body.Close()

	var reader io.Reader = httpResp.Body
	if !uploading && httpResp.ContentLength > 0 {
		reader = &progressReader{
			r:        httpResp.Body,
			total:    httpResp.ContentLength,
			progress: progress,
		}
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("httpx: read response body: %w", err)
	}

	return &Response{
		Status: httpResp.StatusCode,
		Reason: reasonFor(httpResp),
		Header: httpResp.Header,
		Body:   data,
	}, nil
}

func reasonFor(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return http.StatusText(resp.StatusCode)
}

// progressReader reports cumulative transfer percentage as it is consumed.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	progress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.read += int64(n)
		if p.progress != nil && p.total > 0 {
			pct := int(p.read * 100 / p.total)
			if pct > 100 {
				pct = 100
			}
			p.progress(pct)
		}
	}
	return n, err
}
