package importer

import (
	"io"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/xuri/excelize/v2"
)

// Sheet is the first worksheet of a workbook: its header row and the
// non-empty data rows below it.
type Sheet struct {
	Name     string
	Header   Row
	Rows     []Row
	Date1904 bool
}

// ReadFirstSheet loads sheet 1 of an xlsx stream. The first non-empty row is
// the header.
func ReadFirstSheet(r io.Reader) (*Sheet, error) {
	if seeker, ok := r.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, appErrors.ErrInvalidSpreadsheet.WithCause(err)
		}
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, appErrors.ErrInvalidSpreadsheet.WithCause(err)
	}
	defer func() { _ = f.Close() }()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, appErrors.ErrWorksheetNotFound
	}

	formatted, err := f.GetRows(name)
	if err != nil {
		return nil, appErrors.ErrInvalidSpreadsheet.WithCause(err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, appErrors.ErrInvalidSpreadsheet.WithCause(err)
	}

	sheet := &Sheet{Name: name}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		sheet.Date1904 = *props.Date1904
	}

	headerFound := false
	for i := 0; i < len(formatted) || i < len(raw); i++ {
		row := Row{Number: i + 1}
		if i < len(formatted) {
			row.Values = formatted[i]
		}
		if i < len(raw) {
			row.Raw = raw[i]
		}
		if row.empty() {
			continue
		}
		if !headerFound {
			sheet.Header = row
			headerFound = true
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// HeaderCells returns the header texts as displayed.
func (s *Sheet) HeaderCells() []string {
	if len(s.Header.Values) > 0 {
		return s.Header.Values
	}
	return s.Header.Raw
}
