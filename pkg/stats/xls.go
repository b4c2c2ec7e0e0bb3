package stats

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
)

// Sheet is the raw rows of one worksheet.
type Sheet struct {
	Name string
	Rows [][]string
}

// ExtractSheets reads every worksheet of an XLS or XLSX file.
func ExtractSheets(f *File) ([]Sheet, error) {
	if f.Format() == "xlsx" {
		return ExtractSheetsFromXLSX(f)
	}
	return ExtractSheetsFromXLS(f)
}

func ExtractSheetsFromXLS(f *File) ([]Sheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(f.Content), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("could not read XLS file '%s' (%s): %w", f.Title, f.URL, err)
	}

	var sheets []Sheet
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		s := Sheet{Name: ws.Name}
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				s.Rows = append(s.Rows, nil)
				continue
			}
			var cols []string
			for j := 0; j <= row.LastCol(); j++ {
				cols = append(cols, row.Col(j))
			}
			s.Rows = append(s.Rows, cols)
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

func ExtractSheetsFromXLSX(f *File) ([]Sheet, error) {
	wb, err := xlsx.OpenReader(bytes.NewReader(f.Content))
	if err != nil {
		return nil, fmt.Errorf("could not read XLSX file '%s' (%s): %w", f.Title, f.URL, err)
	}

	var sheets []Sheet
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not get rows for sheet '%s': %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// ReadWorkbook converts a workbook into a Document, one table per sheet.
//
// Within a sheet a section is a marker row whose first non-empty cell is
// the section type, a header row of field labels, then one row per
// record. A blank row ends the section.
func ReadWorkbook(f *File) (*Document, error) {
	sheets, err := ExtractSheets(f)
	if err != nil {
		return nil, err
	}
	return DocumentFromSheets(sheets), nil
}

// DocumentFromSheets builds a Document out of raw worksheet rows.
func DocumentFromSheets(sheets []Sheet) *Document {
	doc := &Document{Tables: []*Table{}}
	for _, sh := range sheets {
		doc.Tables = append(doc.Tables, tableFromRows(sh.Name, sh.Rows))
	}
	return doc
}

func tableFromRows(name string, rows [][]string) *Table {
	t := &Table{Name: strings.TrimSpace(name)}

	var (
		current *Section
		header  []string
	)

	closeSection := func() {
		if current != nil {
			current.Single = len(current.Records) == 1
			t.Sections = append(t.Sections, current)
		}
		current, header = nil, nil
	}

	for _, row := range rows {
		if isBlank(row) {
			closeSection()
			continue
		}

		switch {
		case current == nil:
			current = &Section{Type: firstCell(row)}
		case header == nil:
			header = make([]string, len(row))
			for i, c := range row {
				header[i] = strings.TrimSpace(c)
			}
		default:
			if r := recordFromRow(header, row); len(r) > 0 {
				current.Records = append(current.Records, r)
			}
		}
	}
	closeSection()

	return t
}

func recordFromRow(header, row []string) Record {
	r := make(Record)
	for i, label := range header {
		if label == "" || i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			r[label] = f
		} else {
			r[label] = cell
		}
	}
	return r
}

func isBlank(row []string) bool {
	return firstCell(row) == ""
}

func firstCell(row []string) string {
	for _, c := range row {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}
