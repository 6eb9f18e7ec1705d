package domain

// CellKind tells renderers how to format a column.
type CellKind int

const (
	CellText CellKind = iota
	CellInt
	CellMoney
	CellPercent
	CellDate
	CellDateTime
)

// TableColumn is one column of an exported report.
type TableColumn struct {
	Header string
	Kind   CellKind
}

// ReportTable is a report laid out for export. Cell values are string, int,
// decimal.Decimal, float64, time.Time, *time.Time or nil. Percentages are
// expressed on a 0-100 scale.
type ReportTable struct {
	Title    string
	Subtitle string
	Sheet    string
	Columns  []TableColumn
	Rows     [][]interface{}
	Totals   [][]interface{}
}
