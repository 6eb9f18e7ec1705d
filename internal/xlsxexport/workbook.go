// Package xlsxexport renders report tables as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"rentdesk/internal/domain"
)

const (
	defaultSheet = "Sheet1"
	moneyFormat  = `"S/" #,##0.00`
	percentFmt   = "0.00%"
	dateFormat   = "dd/mm/yyyy"
	dateTimeFmt  = "dd/mm/yyyy hh:mm"
	columnWidth  = 18
	notAvailable = "N/A"
)

type styles struct {
	title    int
	subtitle int
	header   int
	total    int
	byKind   map[domain.CellKind]int
}

// Render writes t into a single-sheet workbook: title, subtitle, a blank
// spacer row, the header, data rows and the totals rows.
func Render(t *domain.ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := t.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("naming sheet: %w", err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet, st: st, cols: t.Columns}
	row := 1
	if t.Title != "" {
		if err := w.banner(row, t.Title, st.title); err != nil {
			return nil, err
		}
		row++
	}
	if t.Subtitle != "" {
		if err := w.banner(row, t.Subtitle, st.subtitle); err != nil {
			return nil, err
		}
		row++
	}
	if row > 1 {
		row++
	}

	headerRow := row
	for i, col := range t.Columns {
		if err := w.set(i, row, col.Header, st.header); err != nil {
			return nil, err
		}
	}
	row++

	for _, values := range t.Rows {
		if err := w.dataRow(row, values, false); err != nil {
			return nil, err
		}
		row++
	}
	for _, values := range t.Totals {
		if err := w.dataRow(row, values, true); err != nil {
			return nil, err
		}
		row++
	}

	if len(t.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err := f.SetColWidth(sheet, "A", last, columnWidth); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}
	topLeft, _ := excelize.CoordinatesToCellName(1, headerRow+1)
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (*styles, error) {
	var (
		st  = &styles{byKind: make(map[domain.CellKind]int)}
		err error
	)
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	headerBorder := []excelize.Border{
		{Type: "top", Color: "000000", Style: 2},
		{Type: "bottom", Color: "000000", Style: 2},
	}

	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "1F3864"},
		Alignment: center,
	}); err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	if st.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 10, Color: "808080"},
		Alignment: center,
	}); err != nil {
		return nil, fmt.Errorf("subtitle style: %w", err)
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F3864"}},
		Alignment: center,
		Border:    headerBorder,
	}); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if st.total, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return nil, fmt.Errorf("total style: %w", err)
	}

	formats := map[domain.CellKind]string{
		domain.CellMoney:    moneyFormat,
		domain.CellPercent:  percentFmt,
		domain.CellDate:     dateFormat,
		domain.CellDateTime: dateTimeFmt,
	}
	for kind, format := range formats {
		id, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
		if err != nil {
			return nil, fmt.Errorf("number format %q: %w", format, err)
		}
		st.byKind[kind] = id
	}
	return st, nil
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	st    *styles
	cols  []domain.TableColumn
}

func (w *sheetWriter) banner(row int, text string, style int) error {
	if err := w.set(0, row, text, style); err != nil {
		return err
	}
	if len(w.cols) < 2 {
		return nil
	}
	from, _ := excelize.CoordinatesToCellName(1, row)
	to, _ := excelize.CoordinatesToCellName(len(w.cols), row)
	if err := w.f.MergeCell(w.sheet, from, to); err != nil {
		return fmt.Errorf("merging %s:%s: %w", from, to, err)
	}
	return nil
}

func (w *sheetWriter) dataRow(row int, values []interface{}, total bool) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		kind := domain.CellText
		if i < len(w.cols) {
			kind = w.cols[i].Kind
		}
		value, style := w.cell(v, kind)
		if total {
			if _, isText := value.(string); isText {
				style = w.st.total
			}
		}
		if err := w.set(i, row, value, style); err != nil {
			return err
		}
	}
	return nil
}

// cell converts a table value into what excelize stores, with its style.
func (w *sheetWriter) cell(v interface{}, kind domain.CellKind) (interface{}, int) {
	style := w.st.byKind[kind]
	switch val := v.(type) {
	case decimal.Decimal:
		return val.InexactFloat64(), style
	case float64:
		if kind == domain.CellPercent {
			return val / 100, style
		}
		return val, style
	case *time.Time:
		if val == nil {
			return notAvailable, 0
		}
		return *val, style
	case time.Time:
		if val.IsZero() {
			return notAvailable, 0
		}
		return val, style
	default:
		return val, style
	}
}

func (w *sheetWriter) set(col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		return fmt.Errorf("writing %s: %w", cell, err)
	}
	if style == 0 {
		return nil
	}
	if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
		return fmt.Errorf("styling %s: %w", cell, err)
	}
	return nil
}
