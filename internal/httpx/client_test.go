package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestNetClientExecuteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Token") != "abc" {
			t.Errorf("header not propagated")
		}
		w.Header().Set("X-Server", "test")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewNetClient(5 * time.Second)
	req := &Request{
		Method: http.MethodGet,
		URL:    srv.URL + "/ping",
		Header: http.Header{"X-Token": []string{"abc"}},
	}

	resp, err := client.Execute(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Successful() {
		t.Fatalf("status %d not successful", resp.Status)
	}
	if resp.Header.Get("X-Server") != "test" {
		t.Fatalf("response header missing")
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Fatalf("body %q", resp.Body)
	}
}

func TestNetClientExecuteUnsuccessfulStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewNetClient(5 * time.Second)
	resp, err := client.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL}, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Successful() {
		t.Fatalf("403 reported successful")
	}
	if resp.Status != http.StatusForbidden {
		t.Fatalf("status %d", resp.Status)
	}
	if resp.Reason == "" {
		t.Fatalf("reason empty")
	}
}

func TestNetClientUploadProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewNetClient(5 * time.Second)
	req := &Request{
		Method:      http.MethodPost,
		URL:         srv.URL,
		Body:        []byte(strings.Repeat("x", 1<<16)),
		ContentType: "text/plain",
	}

	var last int
	resp, err := client.Execute(context.Background(), req, func(percent int) {
		if percent < last {
			t.Errorf("upload progress went backwards: %d after %d", percent, last)
		}
		last = percent
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Successful() {
		t.Fatalf("status %d", resp.Status)
	}
	if last != 100 {
		t.Fatalf("final upload progress %d, want 100", last)
	}
}

func TestNetClientDownloadProgress(t *testing.T) {
	payload := strings.Repeat("y", 1<<16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewNetClient(5 * time.Second)

	var last int
	resp, err := client.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL}, func(percent int) {
		last = percent
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Body) != len(payload) {
		t.Fatalf("body length %d", len(resp.Body))
	}
	if last != 100 {
		t.Fatalf("final download progress %d, want 100", last)
	}
}

func TestNetClientTransportFault(t *testing.T) {
	client := NewNetClient(time.Second)
	_, err := client.Execute(context.Background(), &Request{Method: http.MethodGet, URL: "http://127.0.0.1:1/unreachable"}, nil)
	if err == nil {
		t.Fatalf("expected transport fault")
	}
}

func TestNetClientNilRequest(t *testing.T) {
	client := NewNetClient(time.Second)
	if _, err := client.Execute(context.Background(), nil, nil); err != ErrNilRequest {
		t.Fatalf("expected ErrNilRequest, got %v", err)
	}
}

