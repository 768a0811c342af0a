package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/caseops/casectl/pkg/records"
)

func mustParse(t *testing.T, body string) *records.Record {
	t.Helper()
	rec, err := records.Parse([]byte(body))
	require.NoError(t, err)
	return rec
}

func TestWriteXLSX(t *testing.T) {
	recs := []*records.Record{
		mustParse(t, `{"id": "1", "full_name": "Jane Doe", "is_verified": true, "mileage_km": 120.5}`),
		mustParse(t, `{"id": "2", "full_name": "John Roe", "notes": "none"}`),
	}

	path := filepath.Join(t.TempDir(), "persons.xlsx")
	require.NoError(t, WriteXLSX(path, "Persons", recs))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Persons"}, sheets)

	// Header row uses humanized labels, columns in first-seen order.
	for i, want := range []string{"Id", "Full Name", "Is Verified", "Mileage Km", "Notes"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		got, err := f.GetCellValue("Persons", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "header column %d", i+1)
	}

	got, err := f.GetCellValue("Persons", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got)

	got, err = f.GetCellValue("Persons", "C2")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", got, "booleans export as native cells")

	got, err = f.GetCellValue("Persons", "D2")
	require.NoError(t, err)
	assert.Equal(t, "120.5", got, "numbers export as native cells")

	// Second record lacks the verified/mileage columns entirely.
	got, err = f.GetCellValue("Persons", "C3")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = f.GetCellValue("Persons", "E3")
	require.NoError(t, err)
	assert.Equal(t, "none", got)
}

func TestWriteXLSXDefaultSheetName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, "", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Records"}, f.GetSheetList())
}
