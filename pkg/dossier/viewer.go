package dossier

import (
	"context"
	"sync"
)

// Viewer serializes dossier refreshes for one screen: each refresh gets a
// monotonically increasing token and a completed fetch is applied only when
// its token is still the latest. A slow stale response can never overwrite
// a newer one (last-request-wins). In-flight requests are not aborted;
// superseded results are simply discarded.
type Viewer struct {
	fetcher *Fetcher

	mu      sync.Mutex
	latest  uint64
	current *Result
}

func NewViewer(f *Fetcher) *Viewer {
	return &Viewer{fetcher: f}
}

// Refresh fetches and, if still the latest request, applies the result.
// applied is false when a newer refresh superseded this one; the result is
// nil then and the error (if any) belongs to the discarded request.
func (v *Viewer) Refresh(ctx context.Context, entityID string, limits Limits, force bool) (res *Result, applied bool, err error) {
	v.mu.Lock()
	v.latest++
	token := v.latest
	v.mu.Unlock()

	res, err = v.fetcher.Fetch(ctx, entityID, limits, force)

	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.latest {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	v.current = res
	return res, true, nil
}

// Current returns the last applied result, nil before the first success.
func (v *Viewer) Current() *Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
