package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/caseops/casectl/internal/utils"
	"github.com/caseops/casectl/pkg/records"
	"github.com/caseops/casectl/pkg/whttp"
)

// Collections the backend serves under /{type}/{id}.
var validTypes = map[string]bool{
	"persons":    true,
	"profiles":   true,
	"activities": true,
	"vehicles":   true,
	"notes":      true,
	"platforms":  true,
	"users":      true,
}

var (
	// ErrNoChanges means the change-set was empty; no request was sent.
	ErrNoChanges = errors.New("no changes to submit")

	// ErrForbidden is raised locally when the session role cannot perform a
	// write; no request is sent.
	ErrForbidden = errors.New("insufficient permissions for this operation")
)

// Client talks to a case-record backend. Role, when known, gates write
// operations before a request is even built.
type Client struct {
	BaseURL string
	Token   string
	Role    string
	HTTP    *retryablehttp.Client
}

func NewClient(baseURL, token string) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.Logger = nil
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    c,
	}
}

func checkType(typ string) error {
	if !validTypes[typ] {
		return fmt.Errorf("unknown record type %q", typ)
	}
	return nil
}

// canWrite is the client-side permission gate. An unknown role means the
// session never told us; the backend gets to decide then.
func (c *Client) canWrite(typ string) error {
	switch c.Role {
	case "", "admin":
		return nil
	case "editor":
		if typ == "users" {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, extra ...whttp.WHTTPHeader) (*whttp.WHTTPRes, error) {
	headers := []whttp.WHTTPHeader{}
	if c.Token != "" {
		headers = append(headers, whttp.WHTTPHeader{Name: "Authorization", Value: "Bearer " + c.Token})
	}
	headers = append(headers, extra...)

	utils.Log.Debug(method, " ", path)
	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method:  method,
		URL:     c.BaseURL + path,
		Body:    body,
		Headers: headers,
	}, c.HTTP)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		return nil, newAPIError(res)
	}
	return res, nil
}

// GetRaw performs a conditional GET: when etag is non-empty it is attached
// as an If-None-Match precondition and a 304 passes through to the caller.
func (c *Client) GetRaw(ctx context.Context, path, etag string) (*whttp.WHTTPRes, error) {
	var extra []whttp.WHTTPHeader
	if etag != "" {
		extra = append(extra, whttp.WHTTPHeader{Name: "If-None-Match", Value: etag})
	}
	return c.do(ctx, http.MethodGet, path, nil, extra...)
}

// GetRecord fetches one record.
func (c *Client) GetRecord(ctx context.Context, typ, id string) (*records.Record, error) {
	if err := checkType(typ); err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodGet, "/"+typ+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return records.Parse(res.BodyBytes)
}

// UpdateRecord sends a minimal PATCH and returns the record as the backend
// now sees it. An empty change-set returns ErrNoChanges without touching
// the network.
func (c *Client) UpdateRecord(ctx context.Context, typ, id string, changes map[string]any) (*records.Record, error) {
	if err := checkType(typ); err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, ErrNoChanges
	}
	if err := c.canWrite(typ); err != nil {
		return nil, err
	}

	body, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("encoding change-set: %w", err)
	}
	res, err := c.do(ctx, http.MethodPatch, "/"+typ+"/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	if len(res.BodyBytes) == 0 {
		// Some deployments answer 204; reload so the caller always gets the
		// fresh state.
		return c.GetRecord(ctx, typ, id)
	}
	return records.Parse(res.BodyBytes)
}

// DeleteRecord removes one record.
func (c *Client) DeleteRecord(ctx context.Context, typ, id string) error {
	if err := checkType(typ); err != nil {
		return err
	}
	if err := c.canWrite(typ); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, "/"+typ+"/"+url.PathEscape(id), nil)
	return err
}
