// Package catalogxlsx reads product rows from a spreadsheet so the catalog
// can be seeded without hand-written SQL.
package catalogxlsx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/bfguitars/internal/domain"
)

// Columns recognised in the header row. Order in the sheet is free.
const (
	ColCategory    = "category"
	ColName        = "name"
	ColColor       = "color"
	ColPrice       = "price"
	ColImg         = "img"
	ColDescription = "description"
)

var required = []string{ColCategory, ColName, ColColor, ColPrice}

// RowError reports a row that could not be turned into a product.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ImportFile opens path and delegates to Import.
func ImportFile(path string) ([]domain.Product, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Import(fh)
}

// Import reads every sheet of the workbook. The first non-empty row of a
// sheet is its header; sheets without the required columns are skipped.
// Rows with an empty name are ignored.
func Import(r io.Reader) ([]domain.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var out []domain.Product
	for _, sh := range f.GetSheetList() {
		rows, err := f.GetRows(sh)
		if err != nil || len(rows) == 0 {
			continue
		}
		start, cols := header(rows)
		if cols == nil {
			continue
		}
		for i := start + 1; i < len(rows); i++ {
			row := rows[i]
			cell := func(name string) string {
				idx, ok := cols[name]
				if !ok || idx >= len(row) {
					return ""
				}
				return strings.TrimSpace(row[idx])
			}
			if cell(ColName) == "" {
				continue
			}
			price, err := decimal.NewFromString(strings.TrimPrefix(cell(ColPrice), "$"))
			if err != nil {
				return nil, &RowError{Sheet: sh, Row: i + 1, Err: fmt.Errorf("price %q: %w", cell(ColPrice), err)}
			}
			out = append(out, domain.Product{
				Category:    strings.ToLower(cell(ColCategory)),
				Name:        cell(ColName),
				Color:       cell(ColColor),
				Price:       price.Round(2),
				Img:         cell(ColImg),
				Description: strings.ReplaceAll(cell(ColDescription), "\r\n", "\n"),
			})
		}
	}
	return out, nil
}

func header(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cols := make(map[string]int, len(row))
		for j, c := range row {
			cols[strings.ToLower(strings.TrimSpace(c))] = j
		}
		for _, name := range required {
			if _, ok := cols[name]; !ok {
				return 0, nil
			}
		}
		return i, cols
	}
	return 0, nil
}
