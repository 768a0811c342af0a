package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/dossier"
	"github.com/caseops/casectl/pkg/records"
)

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var apiErr *api.APIError
	var valErr *records.ValidationError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
	case errors.Is(err, api.ErrForbidden):
		status = http.StatusForbidden
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result, err := s.Client.List(r.Context(), r.PathValue("type"), api.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]json.RawMessage, 0, len(result.Items))
	for _, rec := range result.Items {
		items = append(items, json.RawMessage(rec.Raw()))
	}
	json.NewEncoder(w).Encode(map[string]any{
		"items": items,
		"total": result.Total,
	})
}

// handleRecord returns the raw record together with its derived editable
// field set, which is all a form front end needs to render an editor.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Client.GetRecord(r.Context(), r.PathValue("type"), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	form := records.Build(rec)
	json.NewEncoder(w).Encode(map[string]any{
		"record":        json.RawMessage(rec.Raw()),
		"fields":        form.Descriptors,
		"initialValues": form.Initial,
	})
}

// handleUpdate takes the full edited value set, diffs it against the
// current record and forwards only the minimal change-set. No changes
// means no backend write.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var edited map[string]any
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	typ, id := r.PathValue("type"), r.PathValue("id")
	rec, err := s.Client.GetRecord(r.Context(), typ, id)
	if err != nil {
		writeError(w, err)
		return
	}

	form := records.Build(rec)
	for key, value := range edited {
		desc, ok := form.Descriptor(key)
		if !ok {
			continue
		}
		if err := records.ValidateEdit(desc, value); err != nil {
			writeError(w, err)
			return
		}
	}

	changes := records.Diff(rec, edited, form.Descriptors)
	if len(changes) == 0 {
		json.NewEncoder(w).Encode(map[string]any{"updated": false})
		return
	}

	updated, err := s.Client.UpdateRecord(r.Context(), typ, id, changes)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"updated": true,
		"record":  json.RawMessage(updated.Raw()),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Client.DeleteRecord(r.Context(), r.PathValue("type"), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDossier(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limits := dossier.Limits{}
	limits.Profiles, _ = strconv.Atoi(q.Get("profiles_limit"))
	limits.Notes, _ = strconv.Atoi(q.Get("notes_limit"))
	limits.Activities, _ = strconv.Atoi(q.Get("activities_limit"))

	res, err := s.Fetcher.Fetch(r.Context(), r.PathValue("id"), limits, q.Get("force") == "true")
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"data":      json.RawMessage(res.Data),
		"etag":      res.ETag,
		"fromCache": res.FromCache,
	})
}

func (s *Server) handleDossierClear(w http.ResponseWriter, r *http.Request) {
	s.Fetcher.Cache.Clear(r.PathValue("id"))
	w.WriteHeader(http.StatusOK)
}
