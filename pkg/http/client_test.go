package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestSendAndParseRetriesOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(WithRetry(3, time.Millisecond))

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.SendAndParse(context.Background(), RequestOptions{URL: srv.URL}, &out); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !out.OK || calls != 3 {
		t.Fatalf("ok=%v calls=%d", out.OK, calls)
	}
}

func TestSendFailsFastOn4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(WithRetry(3, time.Millisecond))
	_, err := c.Send(context.Background(), RequestOptions{URL: srv.URL})

	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err: %v", err)
	}
	if calls != 1 {
		t.Fatalf("4xx must not retry, calls=%d", calls)
	}
}

func TestSendEncodesQueryAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "UBER" {
			t.Errorf("query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("user-agent: %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("test-agent"))
	q := url.Values{}
	q.Set("symbol", "UBER")
	if _, err := c.Send(context.Background(), RequestOptions{URL: srv.URL, Query: q}); err != nil {
		t.Fatalf("send: %v", err)
	}
}
