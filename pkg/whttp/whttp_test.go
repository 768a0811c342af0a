package whttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendHTTPRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		if r.Header.Get("X-Custom") != "yes" {
			t.Error("custom header not forwarded")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("body request missing Content-Type")
		}
		w.Header().Set("ETag", `"abc"`)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	res, err := SendHTTPRequest(context.Background(), &WHTTPReq{
		Method:  http.MethodPost,
		URL:     srv.URL,
		Body:    []byte(`{}`),
		Headers: []WHTTPHeader{{Name: "X-Custom", Value: "yes"}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d", res.StatusCode)
	}
	if res.ETag != `"abc"` {
		t.Errorf("etag = %q", res.ETag)
	}
	if string(res.BodyBytes) != `{"ok": true}` {
		t.Errorf("body = %s", res.BodyBytes)
	}
	if res.HTTPTitle != "" {
		t.Errorf("JSON response should not yield a title, got %q", res.HTTPTitle)
	}
}

func TestHTMLTitleExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>\n  502 Bad Gateway\n</title></head><body>nope</body></html>"))
	}))
	defer srv.Close()

	res, err := SendHTTPRequest(context.Background(), &WHTTPReq{Method: http.MethodGet, URL: srv.URL}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.HTTPTitle != "502 Bad Gateway" {
		t.Errorf("title = %q", res.HTTPTitle)
	}
}
