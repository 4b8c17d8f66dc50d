package dataset

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kpumuk/lazychart/internal/chart/barchart"
	"github.com/kpumuk/lazychart/internal/chart/linechart"
	"github.com/kpumuk/lazychart/internal/chart/piechart"
)

// Workbook sheet names. The bar and line sheets hold one category per row
// with the label in column A and one series per remaining column, named by
// the header row. The pie sheet has label, value and optional color columns.
// The colors sheet maps series names to colors.
const (
	SheetBar    = "bar"
	SheetLine   = "line"
	SheetPie    = "pie"
	SheetColors = "colors"
)

// LoadXLSX reads a workbook file. Missing sheets leave their section empty.
func LoadXLSX(path string) (Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()

	ds, err := readWorkbook(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// DecodeXLSX reads a workbook from r.
func DecodeXLSX(r io.Reader) (Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (Dataset, error) {
	ds := Dataset{LineColors: map[string]string{}}

	colors, err := sheetRows(f, SheetColors)
	if err != nil {
		return Dataset{}, err
	}
	series := map[string]string{}
	for _, row := range skipHeader(colors) {
		if len(row) >= 2 && row[0] != "" {
			series[row[0]] = strings.TrimSpace(row[1])
		}
	}

	rows, err := sheetRows(f, SheetBar)
	if err != nil {
		return Dataset{}, err
	}
	if len(rows) > 0 {
		names := rows[0]
		for r, row := range rows[1:] {
			d := barchart.Datum{Label: cell(row, 0)}
			for c := 1; c < len(names); c++ {
				v, _, err := parseCell(row, c)
				if err != nil {
					return Dataset{}, fmt.Errorf("%s!%s: %w", SheetBar, cellName(c, r+2), err)
				}
				d.Values = append(d.Values, barchart.Value{Name: names[c], Value: v, Color: series[names[c]]})
			}
			ds.Bar = append(ds.Bar, d)
		}
	}

	rows, err = sheetRows(f, SheetLine)
	if err != nil {
		return Dataset{}, err
	}
	if len(rows) > 0 {
		names := rows[0]
		for c := 1; c < len(names); c++ {
			if color := series[names[c]]; color != "" {
				ds.LineColors[names[c]] = color
			}
		}
		for r, row := range rows[1:] {
			d := linechart.Datum{Label: cell(row, 0)}
			for c := 1; c < len(names); c++ {
				v, ok, err := parseCell(row, c)
				if err != nil {
					return Dataset{}, fmt.Errorf("%s!%s: %w", SheetLine, cellName(c, r+2), err)
				}
				d.Values = append(d.Values, linechart.Value{Name: names[c], Value: v, Null: !ok})
			}
			ds.Line = append(ds.Line, d)
		}
	}

	rows, err = sheetRows(f, SheetPie)
	if err != nil {
		return Dataset{}, err
	}
	for r, row := range skipHeader(rows) {
		v, _, err := parseCell(row, 1)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s!%s: %w", SheetPie, cellName(1, r+2), err)
		}
		ds.Pie = append(ds.Pie, piechart.Datum{Label: cell(row, 0), Value: v, Color: strings.TrimSpace(cell(row, 2))})
	}

	return ds, nil
}

// WriteXLSX writes ds as a workbook readable by DecodeXLSX.
func WriteXLSX(w io.Writer, ds Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	colors := map[string]string{}
	var names []string
	for _, d := range ds.Bar {
		for _, v := range d.Values {
			if !slices.Contains(names, v.Name) {
				names = append(names, v.Name)
			}
			if v.Color != "" {
				colors[v.Name] = v.Color
			}
		}
	}
	if len(ds.Bar) > 0 {
		if err := newSheet(f, SheetBar); err != nil {
			return err
		}
		if err := setRow(f, SheetBar, 1, "label", names); err != nil {
			return err
		}
		for i, d := range ds.Bar {
			row := make([]any, len(names))
			for _, v := range d.Values {
				row[slices.Index(names, v.Name)] = v.Value
			}
			if err := setRow(f, SheetBar, i+2, d.Label, row); err != nil {
				return err
			}
		}
	}

	if len(ds.Line) > 0 {
		series := linechart.BuildSeries(ds.Line, ds.LineColors)
		lineNames := make([]string, len(series))
		for k, s := range series {
			lineNames[k] = s.Name
			if s.Color != "" {
				colors[s.Name] = s.Color
			}
		}
		if err := newSheet(f, SheetLine); err != nil {
			return err
		}
		if err := setRow(f, SheetLine, 1, "label", lineNames); err != nil {
			return err
		}
		for i, d := range ds.Line {
			row := make([]any, len(series))
			for k, s := range series {
				if s.Values[i].Valid {
					row[k] = s.Values[i].Value
				}
			}
			if err := setRow(f, SheetLine, i+2, d.Label, row); err != nil {
				return err
			}
		}
	}

	if len(ds.Pie) > 0 {
		if err := newSheet(f, SheetPie); err != nil {
			return err
		}
		if err := setRow(f, SheetPie, 1, "label", []string{"value", "color"}); err != nil {
			return err
		}
		for i, d := range ds.Pie {
			if err := setRow(f, SheetPie, i+2, d.Label, []any{d.Value, d.Color}); err != nil {
				return err
			}
		}
	}

	if len(colors) > 0 {
		if err := newSheet(f, SheetColors); err != nil {
			return err
		}
		if err := setRow(f, SheetColors, 1, "name", []string{"color"}); err != nil {
			return err
		}
		keys := make([]string, 0, len(colors))
		for k := range colors {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for i, k := range keys {
			if err := setRow(f, SheetColors, i+2, k, []string{colors[k]}); err != nil {
				return err
			}
		}
	}

	if len(f.GetSheetList()) > 1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func newSheet(f *excelize.File, name string) error {
	_, err := f.NewSheet(name)
	return err
}

func setRow[T any](f *excelize.File, sheet string, row int, label string, values []T) error {
	cells := make([]any, 0, len(values)+1)
	cells = append(cells, label)
	for _, v := range values {
		cells = append(cells, v)
	}
	return f.SetSheetRow(sheet, cellName(0, row), &cells)
}

func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, nil
	}
	return f.GetRows(sheet)
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, c int) string {
	if c < len(row) {
		return row[c]
	}
	return ""
}

// parseCell reads a numeric cell. ok is false for a blank cell.
func parseCell(row []string, c int) (float64, bool, error) {
	s := strings.TrimSpace(cell(row, c))
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", s)
	}
	return v, true, nil
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row, col+1)
	}
	return name
}
