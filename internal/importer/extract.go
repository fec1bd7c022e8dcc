package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Row is one sheet row. Values holds the cells as displayed; Raw holds them
// without number formatting, which keeps serial dates and long numbers intact.
type Row struct {
	Number int
	Values []string
	Raw    []string
}

func (r Row) empty() bool {
	for _, v := range r.Raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cell(cells []string, col int) string {
	if col < 1 || col > len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col-1])
}

// rawPreferred fields read the unformatted value so a document number is
// never rendered as 1.23E+09.
var rawPreferred = map[Field]bool{
	FieldDocument: true,
	FieldPhone:    true,
}

// String returns the cell text for f, or "" when the sheet has no such column.
func (l Layout) String(row Row, f Field) string {
	col, ok := l.Column(f)
	if !ok {
		return ""
	}
	if rawPreferred[f] {
		if v := cell(row.Raw, col); v != "" {
			return v
		}
	}
	return cell(row.Values, col)
}

// Decimal returns the numeric value for f. Missing or non-numeric cells are zero.
func (l Layout) Decimal(row Row, f Field) decimal.Decimal {
	col, ok := l.Column(f)
	if !ok {
		return decimal.Zero
	}
	for _, v := range []string{cell(row.Raw, col), cell(row.Values, col)} {
		if d, ok := parseAmount(v); ok {
			return d
		}
	}
	return decimal.Zero
}

var amountNoise = strings.NewReplacer("$", "", "€", "", " ", "", "\u00a0", "")

// parseAmount accepts plain numbers plus the usual thousands and decimal
// separators in either convention.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = amountNoise.Replace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0 && strings.Count(s, ",") == 1 && len(s)-comma-1 != 3:
		s = strings.Replace(s, ",", ".", 1)
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// Text dates are always day first. Real date cells never reach these layouts
// because their raw value is a serial number.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02/01/06",
	"2/1/06",
	"02-01-06",
	"2-1-06",
}

// Serial dates outside this range are plain numbers such as a bare year.
const (
	minSerialDate = 10000
	maxSerialDate = 2958465
)

// Date returns the date in f. A serial number is read as a spreadsheet date,
// text is tried against common layouts, and anything else yields fallback.
func (l Layout) Date(row Row, f Field, fallback time.Time, date1904 bool) time.Time {
	col, ok := l.Column(f)
	if !ok {
		return fallback
	}

	if raw := cell(row.Raw, col); raw != "" {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial >= minSerialDate && serial <= maxSerialDate {
			if t, err := excelize.ExcelDateToTime(serial, date1904); err == nil {
				return t
			}
		}
	}

	for _, v := range []string{cell(row.Values, col), cell(row.Raw, col)} {
		if v == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return fallback
}
