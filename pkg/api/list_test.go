package api

import "testing"

func TestNormalizeListEnvelopes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantItems int
		wantTotal int
	}{
		{"items envelope", `{"items": [{"id":"1"},{"id":"2"}], "total": 9}`, 2, 9},
		{"results envelope", `{"results": [{"id":"1"}], "total_count": 4}`, 1, 4},
		{"data envelope", `{"data": [{"id":"1"}], "totalCount": 3}`, 1, 3},
		{"entries envelope", `{"entries": [], "count": 0}`, 0, 0},
		{"records envelope", `{"records": [{"id":"1"}]}`, 1, -1},
		{"rows envelope", `{"rows": [{"id":"1"}], "meta": {"total": 7}}`, 1, 7},
		{"nested pagination total", `{"items": [{"id":"1"}], "pagination": {"total": 2}}`, 1, 2},
		{"bare array", `[{"id":"1"},{"id":"2"},{"id":"3"}]`, 3, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := normalizeList([]byte(tc.body))
			if err != nil {
				t.Fatal(err)
			}
			if len(page.Items) != tc.wantItems {
				t.Errorf("got %d items, want %d", len(page.Items), tc.wantItems)
			}
			if page.Total != tc.wantTotal {
				t.Errorf("got total %d, want %d", page.Total, tc.wantTotal)
			}
		})
	}
}

func TestNormalizeListKeyPriority(t *testing.T) {
	// "items" wins even when other envelope keys are present.
	body := `{"data": [{"id":"x"}], "items": [{"id":"a"},{"id":"b"}], "total": 2, "count": 99}`
	page, err := normalizeList([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 2 || page.Items[0].ID() != "a" {
		t.Fatalf("expected the items array to win, got %d items", len(page.Items))
	}
	if page.Total != 2 {
		t.Fatalf("expected the total key to win, got %d", page.Total)
	}
}

func TestNormalizeListUnknownShape(t *testing.T) {
	for _, body := range []string{`{"stuff": {"a": 1}}`, `"just a string"`, `{not json`} {
		if _, err := normalizeList([]byte(body)); err == nil {
			t.Errorf("expected error for %s", body)
		}
	}
}
