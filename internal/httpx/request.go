package httpx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/davrosz/actionhttp/internal/convert"
)

// Request is one fully built outgoing request.
type Request struct {
	Method      string
	URL         string
	Header      http.Header
	Body        []byte
	ContentType string
}

// RequestBuilder assembles a Request against a fixed base URL. Helpers fill it
// from action fields; Build produces the immutable Request handed to the Client.
type RequestBuilder struct {
	baseURL   string
	converter convert.Converter

	method string
	path   string
	query  url.Values
	header http.Header
	form   url.Values
	parts  []part

	body        []byte
	contentType string
	bodyErr     error
}

// part is one multipart section. An empty filename renders as a plain form
// field; a filename renders as a file part.
type part struct {
	name     string
	filename string
	data     []byte
}

func NewRequestBuilder(baseURL string, converter convert.Converter) *RequestBuilder {
	return &RequestBuilder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		converter: converter,
		query:     url.Values{},
		header:    http.Header{},
		form:      url.Values{},
	}
}

func (b *RequestBuilder) SetMethod(method string) *RequestBuilder {
	b.method = strings.ToUpper(strings.TrimSpace(method))
	return b
}

// SetPath sets the request path. Placeholders of the form {name} are resolved
// through ResolvePath.
func (b *RequestBuilder) SetPath(path string) *RequestBuilder {
	b.path = path
	return b
}

// ResolvePath substitutes one {name} placeholder in the current path.
func (b *RequestBuilder) ResolvePath(name, value string) *RequestBuilder {
	b.path = strings.ReplaceAll(b.path, "{"+name+"}", url.PathEscape(value))
	return b
}

func (b *RequestBuilder) AddQuery(name, value string) *RequestBuilder {
	b.query.Add(name, value)
	return b
}

func (b *RequestBuilder) AddHeader(name, value string) *RequestBuilder {
	b.header.Add(name, value)
	return b
}

// AddField adds one form field; Build renders fields as a url-encoded body.
func (b *RequestBuilder) AddField(name, value string) *RequestBuilder {
	b.form.Add(name, value)
	return b
}

// AddPart adds one multipart section; Build renders parts as a
// multipart/form-data body. Filename may be empty for text parts.
func (b *RequestBuilder) AddPart(name, filename string, data []byte) *RequestBuilder {
	b.parts = append(b.parts, part{name: name, filename: filename, data: data})
	return b
}

// SetBody serializes v through the converter as the request body.
func (b *RequestBuilder) SetBody(v any) *RequestBuilder {
	data, contentType, err := b.converter.Encode(v)
	if err != nil {
		b.bodyErr = err
		return b
	}
	b.body = data
	b.contentType = contentType
	return b
}

// SetRawBody sets a pre-encoded request body.
func (b *RequestBuilder) SetRawBody(data []byte, contentType string) *RequestBuilder {
	b.body = data
	b.contentType = contentType
	return b
}

func (b *RequestBuilder) Build() (*Request, error) {
	if b.baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if b.method == "" {
		return nil, ErrMethodRequired
	}
	if b.bodyErr != nil {
		return nil, b.bodyErr
	}
	sources := 0
	if len(b.body) > 0 {
		sources++
	}
	if len(b.form) > 0 {
		sources++
	}
	if len(b.parts) > 0 {
		sources++
	}
	if sources > 1 {
		return nil, ErrBodyConflict
	}
	if unresolved := placeholderIn(b.path); unresolved != "" {
		return nil, fmt.Errorf("httpx: unresolved path placeholder %q in %q", unresolved, b.path)
	}

	target := b.baseURL
	if p := strings.TrimSpace(b.path); p != "" {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		target += p
	}
	if len(b.query) > 0 {
		target += "?" + b.query.Encode()
	}

	req := &Request{
		Method:      b.method,
		URL:         target,
		Header:      b.header,
		Body:        b.body,
		ContentType: b.contentType,
	}
	if len(b.form) > 0 {
		req.Body = []byte(b.form.Encode())
		req.ContentType = "application/x-www-form-urlencoded"
	}
	if len(b.parts) > 0 {
		data, contentType, err := renderParts(b.parts)
		if err != nil {
			return nil, err
		}
		req.Body = data
		req.ContentType = contentType
	}
	return req, nil
}

func renderParts(parts []part) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		var (
			w   io.Writer
			err error
		)
		if p.filename != "" {
			w, err = mw.CreateFormFile(p.name, p.filename)
		} else {
			w, err = mw.CreateFormField(p.name)
		}
		if err != nil {
			return nil, "", fmt.Errorf("httpx: render part %q: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, "", fmt.Errorf("httpx: render part %q: %w", p.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("httpx: finalize parts: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

func placeholderIn(path string) string {
	start := strings.IndexByte(path, '{')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(path[start:], '}')
	if end < 0 {
		return ""
	}
	return path[start : start+end+1]
}
