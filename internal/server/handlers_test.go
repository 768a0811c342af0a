package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/caseops/casectl/pkg/api"
	"github.com/caseops/casectl/pkg/dossier"
)

// fakeBackend records write traffic so tests can assert what reached it.
type fakeBackend struct {
	patches []string
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			b.patches = append(b.patches, string(body))
			w.Write([]byte(`{"id": "42", "full_name": "Jane Doe", "status": "archived"}`))
		case r.URL.Path == "/persons/42":
			w.Write([]byte(`{"id": "42", "full_name": "Jane Doe", "status": "active"}`))
		case r.URL.Path == "/persons/42/dossier":
			if r.Header.Get("If-None-Match") == `"d1"` {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("ETag", `"d1"`)
			w.Write([]byte(`{"person": {"id": "42"}}`))
		case r.URL.Path == "/persons":
			w.Write([]byte(`{"items": [{"id": "42", "full_name": "Jane Doe"}], "total": 1}`))
		default:
			http.Error(w, `{"message": "not found"}`, http.StatusNotFound)
		}
	}
}

func newTestConsole(t *testing.T, user, pass string) (*httptest.Server, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	client := api.NewClient(backendSrv.URL, "tok")
	fetcher := dossier.NewFetcher(client, dossier.NewCache())
	console := httptest.NewServer(New(client, fetcher, user, pass).Handler())
	t.Cleanup(console.Close)
	return console, backend
}

func TestRecordEndpointIncludesForm(t *testing.T) {
	console, _ := newTestConsole(t, "", "")

	res, err := http.Get(console.URL + "/api/records/persons/42")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "42", gjson.GetBytes(body, "record.id").Str)
	assert.Equal(t, "Jane Doe", gjson.GetBytes(body, "initialValues.full_name").Str)

	fields := gjson.GetBytes(body, "fields").Array()
	require.NotEmpty(t, fields)
	assert.Equal(t, "full_name", fields[0].Get("key").Str)
	assert.Equal(t, "text", fields[0].Get("inputType").Str)
	// The id key is hidden, so it never shows up as a field.
	for _, f := range fields {
		assert.NotEqual(t, "id", f.Get("key").Str)
	}
}

func TestUpdateEndpointSuppressesEmptyDiff(t *testing.T) {
	console, backend := newTestConsole(t, "", "")

	// Submit the values the record already has.
	payload := `{"full_name": "Jane Doe", "status": "active"}`
	req, _ := http.NewRequest(http.MethodPatch, console.URL+"/api/records/persons/42", bytes.NewBufferString(payload))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.False(t, gjson.GetBytes(body, "updated").Bool())
	assert.Empty(t, backend.patches, "an unchanged form must not produce a backend write")
}

func TestUpdateEndpointForwardsMinimalDiff(t *testing.T) {
	console, backend := newTestConsole(t, "", "")

	payload := `{"full_name": "Jane Doe", "status": "archived"}`
	req, _ := http.NewRequest(http.MethodPatch, console.URL+"/api/records/persons/42", bytes.NewBufferString(payload))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.True(t, gjson.GetBytes(body, "updated").Bool())
	assert.Equal(t, "archived", gjson.GetBytes(body, "record.status").Str)

	require.Len(t, backend.patches, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(backend.patches[0]), &sent))
	assert.Equal(t, map[string]any{"status": "archived"}, sent, "only the changed key goes to the backend")
}

func TestUpdateEndpointRejectsInvalidChoice(t *testing.T) {
	console, backend := newTestConsole(t, "", "")

	payload := `{"status": "vanished"}`
	req, _ := http.NewRequest(http.MethodPatch, console.URL+"/api/records/persons/42", bytes.NewBufferString(payload))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, backend.patches)
}

func TestListEndpoint(t *testing.T) {
	console, _ := newTestConsole(t, "", "")

	res, err := http.Get(console.URL + "/api/records/persons")
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, int64(1), gjson.GetBytes(body, "total").Int())
	assert.Equal(t, "42", gjson.GetBytes(body, "items.0.id").Str)
}

func TestBackendErrorsPassThrough(t *testing.T) {
	console, _ := newTestConsole(t, "", "")

	res, err := http.Get(console.URL + "/api/records/persons/999")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "not found")
}

func TestDossierEndpointUsesCache(t *testing.T) {
	console, _ := newTestConsole(t, "", "")

	res, err := http.Get(console.URL + "/api/dossier/42")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.False(t, gjson.GetBytes(body, "fromCache").Bool())
	assert.Equal(t, `"d1"`, gjson.GetBytes(body, "etag").Str)

	// The backend replays the same ETag, so the revalidation comes back 304
	// and the console serves the cached payload.
	res, err = http.Get(console.URL + "/api/dossier/42")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.True(t, gjson.GetBytes(body, "fromCache").Bool())
	assert.Equal(t, "42", gjson.GetBytes(body, "data.person.id").Str)
}

func TestBasicAuth(t *testing.T) {
	console, _ := newTestConsole(t, "admin", "secret")

	res, err := http.Get(console.URL + "/api/records/persons")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, console.URL+"/api/records/persons", nil)
	req.SetBasicAuth("admin", "secret")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
