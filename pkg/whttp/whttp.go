package whttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"
)

type WHTTPHeader struct {
	Name  string
	Value string
}

type WHTTPReq struct {
	URL     string
	Method  string
	Body    []byte
	Headers []WHTTPHeader
}

type WHTTPRes struct {
	StatusCode int
	BodyBytes  []byte
	Headers    http.Header
	ETag       string
	HTTPTitle  string
}

// defaultClient retries transient failures; everything here is
// CLI-interactive so the retry budget stays small.
var defaultClient = newDefaultClient()

func newDefaultClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.Logger = nil
	return c
}

// SendHTTPRequest performs one request and slurps the response. A nil
// client uses the package default. Every request carries a fresh
// X-Request-ID so backend audit logs can be correlated with client runs.
func SendHTTPRequest(ctx context.Context, wReq *WHTTPReq, client *retryablehttp.Client) (*WHTTPRes, error) {
	if client == nil {
		client = defaultClient
	}

	var body io.Reader
	if len(wReq.Body) > 0 {
		body = bytes.NewReader(wReq.Body)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, wReq.Method, wReq.URL, body)
	if err != nil {
		return nil, err
	}

	// Set common headers
	req.Header.Set("User-Agent", "casectl")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if len(wReq.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	// Set custom headers
	for _, h := range wReq.Headers {
		req.Header.Set(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	wRes := &WHTTPRes{
		StatusCode: resp.StatusCode,
		BodyBytes:  bodyBytes,
		Headers:    resp.Header,
		ETag:       resp.Header.Get("ETag"),
	}

	// Error pages from proxies come back as HTML; keep the title around so
	// callers can surface something better than "status 502".
	if looksHTML(resp.Header.Get("Content-Type"), bodyBytes) {
		if title, ok := getHTMLTitle(string(bodyBytes)); ok {
			wRes.HTTPTitle = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", " "), "\r", ""))
		}
	}

	return wRes, nil
}

func looksHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html")
}

func isTitleElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "title"
}

func traverse(n *html.Node) (string, bool) {
	if isTitleElement(n) {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result, ok := traverse(c)
		if ok {
			return result, ok
		}
	}

	return "", false
}

func getHTMLTitle(requestBody string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(requestBody))
	if err != nil {
		return "", false
	}

	return traverse(doc)
}
