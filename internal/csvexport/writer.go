package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
	notAvailable   = "N/A"
)

// Writer wraps csv.Writer for exporting report tables as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the column headers of t.
func (w *Writer) WriteHeader(columns []domain.TableColumn) error {
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	return w.csv.Write(header)
}

// WriteRows formats and writes a batch of table rows.
func (w *Writer) WriteRows(columns []domain.TableColumn, rows [][]interface{}) error {
	for _, values := range rows {
		if err := w.csv.Write(formatRow(columns, values)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Render writes t as a BOM-prefixed CSV document: header, rows, totals.
// Title and subtitle are not part of the CSV layout.
func Render(t *domain.ReportTable) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)

	w := NewWriter(&buf)
	if err := w.WriteHeader(t.Columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteRows(t.Columns, t.Rows); err != nil {
		return nil, fmt.Errorf("writing csv rows: %w", err)
	}
	if err := w.WriteRows(t.Columns, t.Totals); err != nil {
		return nil, fmt.Errorf("writing csv totals: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// formatRow renders one row, padding short rows to the column count.
func formatRow(columns []domain.TableColumn, values []interface{}) []string {
	n := len(columns)
	if len(values) > n {
		n = len(values)
	}
	row := make([]string, n)
	for i, v := range values {
		kind := domain.CellText
		if i < len(columns) {
			kind = columns[i].Kind
		}
		row[i] = formatValue(v, kind)
	}
	return row
}

func formatValue(v interface{}, kind domain.CellKind) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case decimal.Decimal:
		return val.StringFixed(2)
	case float64:
		return formatFloat(val)
	case time.Time:
		return formatTime(&val, kind)
	case *time.Time:
		return formatTime(val, kind)
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t *time.Time, kind domain.CellKind) string {
	if t == nil || t.IsZero() {
		return notAvailable
	}
	if kind == domain.CellDateTime {
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateLayout)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download name: {base}.{ext}.
func BuildFilename(base, ext string) string {
	sanitized := SanitizeFilename(base)
	if sanitized == "" {
		sanitized = "reporte"
	}
	return sanitized + "." + ext
}
