package api

import (
	"strings"
	"testing"

	"github.com/caseops/casectl/pkg/whttp"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name string
		res  whttp.WHTTPRes
		want string
	}{
		{
			"message key",
			whttp.WHTTPRes{StatusCode: 400, BodyBytes: []byte(`{"message": "bad input"}`)},
			"bad input",
		},
		{
			"error key",
			whttp.WHTTPRes{StatusCode: 404, BodyBytes: []byte(`{"error": "person not found"}`)},
			"person not found",
		},
		{
			"detail key",
			whttp.WHTTPRes{StatusCode: 422, BodyBytes: []byte(`{"detail": "unprocessable"}`)},
			"unprocessable",
		},
		{
			"nested error message",
			whttp.WHTTPRes{StatusCode: 500, BodyBytes: []byte(`{"error": {"message": "boom"}}`)},
			"boom",
		},
		{
			"errors array",
			whttp.WHTTPRes{StatusCode: 400, BodyBytes: []byte(`{"errors": [{"message": "first"}, {"message": "second"}]}`)},
			"first",
		},
		{
			"html error page falls back to title",
			whttp.WHTTPRes{StatusCode: 502, BodyBytes: []byte("<html><head><title>502 Bad Gateway</title></head></html>"), HTTPTitle: "502 Bad Gateway"},
			"502 Bad Gateway",
		},
		{
			"nothing usable",
			whttp.WHTTPRes{StatusCode: 500, BodyBytes: []byte("garbage")},
			"request failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := newAPIError(&tc.res)
			if err.Status != tc.res.StatusCode {
				t.Errorf("status = %d, want %d", err.Status, tc.res.StatusCode)
			}
			if err.Message != tc.want {
				t.Errorf("message = %q, want %q", err.Message, tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Error() %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}
