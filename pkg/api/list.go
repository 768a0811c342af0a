package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/caseops/casectl/pkg/records"
)

// ListOptions controls pagination and filtering of record lists.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
}

// Page is a normalized list response. Total is -1 when the backend sent no
// usable count.
type Page struct {
	Items []*records.Record
	Total int
}

// Envelope keys the backend uses for the item array, in priority order.
var itemKeys = []string{"items", "results", "data", "entries", "records", "rows"}

// Spellings for the total count, in priority order.
var totalPaths = []string{"total", "total_count", "totalCount", "count", "meta.total", "pagination.total"}

// normalizeList accepts either a bare array or an envelope object and
// returns the items plus whatever total it can find.
func normalizeList(body []byte) (*Page, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed list payload")
	}
	root := gjson.ParseBytes(body)

	var arr gjson.Result
	found := false
	switch {
	case root.IsArray():
		arr = root
		found = true
	case root.IsObject():
		for _, key := range itemKeys {
			if v := root.Get(key); v.IsArray() {
				arr = v
				found = true
				break
			}
		}
	}
	if !found {
		return nil, errors.New("unrecognized list payload shape")
	}

	page := &Page{Total: -1}
	var parseErr error
	arr.ForEach(func(_, item gjson.Result) bool {
		rec, err := records.Parse([]byte(item.Raw))
		if err != nil {
			parseErr = fmt.Errorf("list item: %w", err)
			return false
		}
		page.Items = append(page.Items, rec)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if root.IsObject() {
		for _, path := range totalPaths {
			if v := root.Get(path); v.Type == gjson.Number {
				page.Total = int(v.Int())
				break
			}
		}
	}
	return page, nil
}

// List fetches one page of a collection.
func (c *Client) List(ctx context.Context, typ string, opts ListOptions) (*Page, error) {
	if err := checkType(typ); err != nil {
		return nil, err
	}

	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	path := "/" + typ
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return normalizeList(res.BodyBytes)
}

// ListRelated fetches one of a person's related collections
// (profiles, notes, activities).
func (c *Client) ListRelated(ctx context.Context, personID, section string, limit int) (*Page, error) {
	path := "/persons/" + url.PathEscape(personID) + "/" + section
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	res, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return normalizeList(res.BodyBytes)
}
