package dossier

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/records"
)

// Result is one dossier fetch outcome. FromCache is true when the backend
// answered 304 (or sent an empty fresh body) and the cached payload was
// served instead.
type Result struct {
	Data      []byte
	ETag      string
	FromCache bool
}

// PDFResult is the binary export variant.
type PDFResult struct {
	Data      []byte
	ETag      string
	Filename  string
	FromCache bool
}

// Fetcher loads dossiers through the conditional-request cache. Concurrent
// fetches for the same key collapse into one request.
type Fetcher struct {
	Client *api.Client
	Cache  *Cache

	group singleflight.Group
}

func NewFetcher(client *api.Client, cache *Cache) *Fetcher {
	if cache == nil {
		cache = NewCache()
	}
	return &Fetcher{Client: client, Cache: cache}
}

func dossierPath(entityID string, l Limits, pdf bool) string {
	suffix := ""
	if pdf {
		suffix = ".pdf"
	}
	q := url.Values{}
	q.Set("profiles_limit", fmt.Sprint(l.Profiles))
	q.Set("notes_limit", fmt.Sprint(l.Notes))
	q.Set("activities_limit", fmt.Sprint(l.Activities))
	return "/persons/" + url.PathEscape(entityID) + "/dossier" + suffix + "?" + q.Encode()
}

// Fetch returns the aggregate dossier for an entity. The first fetch for a
// key is always unconditional; later ones send If-None-Match unless forced.
func (f *Fetcher) Fetch(ctx context.Context, entityID string, limits Limits, force bool) (*Result, error) {
	limits = limits.withDefaults()
	key := cacheKey(entityID, limits)

	v, err, _ := f.group.Do(fmt.Sprintf("data|%s|%t", key, force), func() (any, error) {
		return f.fetchData(ctx, entityID, limits, force)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (f *Fetcher) fetchData(ctx context.Context, entityID string, limits Limits, force bool) (*Result, error) {
	cached, haveCached := f.Cache.Get(entityID, limits)

	etag := ""
	if haveCached && !force {
		etag = cached.ETag
	}
	res, err := f.Client.GetRaw(ctx, dossierPath(entityID, limits, false), etag)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusNotModified {
		if !haveCached {
			return nil, errors.New("dossier: not modified but nothing cached")
		}
		return &Result{Data: cached.Data, ETag: cached.ETag, FromCache: true}, nil
	}

	if len(res.BodyBytes) == 0 {
		if haveCached {
			return &Result{Data: cached.Data, ETag: cached.ETag, FromCache: true}, nil
		}
		return nil, errors.New("dossier: empty response and no cached fallback")
	}

	f.Cache.Put(entityID, limits, Entry{Data: res.BodyBytes, ETag: res.ETag})
	return &Result{Data: res.BodyBytes, ETag: res.ETag}, nil
}

// FetchPDF follows the same conditional-caching contract for the binary
// export. The filename comes from Content-Disposition when present.
func (f *Fetcher) FetchPDF(ctx context.Context, entityID string, limits Limits, force bool) (*PDFResult, error) {
	limits = limits.withDefaults()
	key := cacheKey(entityID, limits)

	v, err, _ := f.group.Do(fmt.Sprintf("pdf|%s|%t", key, force), func() (any, error) {
		return f.fetchPDF(ctx, entityID, limits, force)
	})
	if err != nil {
		return nil, err
	}
	return v.(*PDFResult), nil
}

func (f *Fetcher) fetchPDF(ctx context.Context, entityID string, limits Limits, force bool) (*PDFResult, error) {
	cached, haveCached := f.Cache.GetPDF(entityID, limits)

	etag := ""
	if haveCached && !force {
		etag = cached.ETag
	}
	res, err := f.Client.GetRaw(ctx, dossierPath(entityID, limits, true), etag)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusNotModified {
		if !haveCached {
			return nil, errors.New("dossier: not modified but nothing cached")
		}
		return &PDFResult{Data: cached.Data, ETag: cached.ETag, Filename: cached.Filename, FromCache: true}, nil
	}

	if len(res.BodyBytes) == 0 {
		if haveCached {
			return &PDFResult{Data: cached.Data, ETag: cached.ETag, Filename: cached.Filename, FromCache: true}, nil
		}
		return nil, errors.New("dossier: empty response and no cached fallback")
	}

	entry := PDFEntry{
		Data:     res.BodyBytes,
		ETag:     res.ETag,
		Filename: pdfFilename(res.Headers.Get("Content-Disposition"), entityID),
	}
	f.Cache.PutPDF(entityID, limits, entry)
	return &PDFResult{Data: entry.Data, ETag: entry.ETag, Filename: entry.Filename}, nil
}

func pdfFilename(contentDisposition, entityID string) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	return fmt.Sprintf("dossier-%s.pdf", entityID)
}

// Sections holds a person's related collections.
type Sections struct {
	Profiles   []*records.Record
	Notes      []*records.Record
	Activities []*records.Record
}

// Sections loads the three related collections concurrently and keeps
// whatever succeeded. Individual failures are joined into one combined
// error; the partial result is still returned so callers can render it.
func (f *Fetcher) Sections(ctx context.Context, entityID string, limits Limits) (*Sections, error) {
	limits = limits.withDefaults()
	out := &Sections{}

	parts := []struct {
		name  string
		limit int
		dst   *[]*records.Record
	}{
		{"profiles", limits.Profiles, &out.Profiles},
		{"notes", limits.Notes, &out.Notes},
		{"activities", limits.Activities, &out.Activities},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []string
	)
	for _, part := range parts {
		wg.Add(1)
		go func(name string, limit int, dst *[]*records.Record) {
			defer wg.Done()
			page, err := f.Client.ListRelated(ctx, entityID, name, limit)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", name, err))
				return
			}
			*dst = page.Items
		}(part.name, part.limit, part.dst)
	}
	wg.Wait()

	if len(failures) > 0 {
		return out, fmt.Errorf("partial dossier load: %s", strings.Join(failures, "; "))
	}
	return out, nil
}
