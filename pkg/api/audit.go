package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AuditOptions filters the audit log listing.
type AuditOptions struct {
	Limit    int
	Offset   int
	UserID   string
	Action   string
	Resource string
}

// AuditLogs fetches audit entries, newest first per backend contract.
func (c *Client) AuditLogs(ctx context.Context, opts AuditOptions) (*Page, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.UserID != "" {
		q.Set("user_id", opts.UserID)
	}
	if opts.Action != "" {
		q.Set("action", opts.Action)
	}
	if opts.Resource != "" {
		q.Set("resource", opts.Resource)
	}

	path := "/audit/logs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return normalizeList(res.BodyBytes)
}

// ClearAuditLogs wipes the audit trail. Admin only; the role gate fires
// before any request.
func (c *Client) ClearAuditLogs(ctx context.Context) error {
	if c.Role != "" && c.Role != "admin" {
		return ErrForbidden
	}
	_, err := c.do(ctx, http.MethodDelete, "/audit/logs", nil)
	return err
}
