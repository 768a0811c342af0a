package export

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"

	"github.com/caseops/casectl/pkg/records"
)

// WriteXLSX writes a record list as one worksheet: humanized header row,
// then one row per record with natively typed cells (numbers stay numbers,
// booleans stay booleans). Columns are the union of all record keys in
// first-seen order.
func WriteXLSX(path, sheet string, recs []*records.Record) error {
	if sheet == "" {
		sheet = "Records"
	}

	var cols []string
	seen := make(map[string]bool)
	for _, rec := range recs {
		for _, key := range rec.Keys() {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, key := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, records.Humanize(key)); err != nil {
			return err
		}
	}

	for row, rec := range recs {
		for col, key := range cols {
			if !rec.Has(key) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(rec.Get(key))); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func cellValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		// Nested structures land as their JSON text.
		return v.Raw
	}
}
