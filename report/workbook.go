package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/enzfit"
)

// Sentinel errors returned by report.
var (
	// ErrNoFits indicates a fit report requested without results.
	ErrNoFits = fmt.Errorf("report: no fit results: %w", enzfit.ErrValidation)

	// ErrFitCount indicates a fit count that does not match the Set count.
	ErrFitCount = fmt.Errorf("report: fit count mismatch: %w", enzfit.ErrValidation)
)

const defaultSheet = "Sheet1"

// workbook wraps an excelize file whose first added sheet replaces the
// default one.
type workbook struct {
	f      *excelize.File
	sheets int
	bold   int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &workbook{f: f, bold: bold}, nil
}

// sheet adds a worksheet. Names are cleaned of characters Excel rejects and
// cut to its 31-character limit.
func (wb *workbook) sheet(name string) (*sheet, error) {
	name = sheetName(name)
	if wb.sheets == 0 {
		if err := wb.f.SetSheetName(defaultSheet, name); err != nil {
			return nil, err
		}
	} else if _, err := wb.f.NewSheet(name); err != nil {
		return nil, err
	}
	wb.sheets++

	return &sheet{wb: wb, name: name}, nil
}

func (wb *workbook) writeTo(w io.Writer) error {
	defer func() { _ = wb.f.Close() }()
	wb.f.SetActiveSheet(0)
	if _, err := wb.f.WriteTo(w); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}

	return nil
}

func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, name)
	if r := []rune(name); len(r) > excelize.MaxSheetNameLength {
		name = string(r[:excelize.MaxSheetNameLength])
	}
	if strings.TrimSpace(name) == "" {
		name = "data"
	}

	return name
}

// sheet appends rows top to bottom.
type sheet struct {
	wb   *workbook
	name string
	row  int
}

// append writes vals into the next row; a call without values leaves an
// empty row.
func (s *sheet) append(vals ...any) error {
	s.row++
	if len(vals) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}

	return s.wb.f.SetSheetRow(s.name, cell, &vals)
}

// header appends vals in bold.
func (s *sheet) header(vals ...any) error {
	if err := s.append(vals...); err != nil {
		return err
	}
	if len(vals) == 0 {
		return nil
	}
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	last, err := excelize.CoordinatesToCellName(len(vals), s.row)
	if err != nil {
		return err
	}

	return s.wb.f.SetCellStyle(s.name, first, last, s.wb.bold)
}

// bound renders a parameter bound; infinities become text.
func bound(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	return v
}

// cycle repeats labels n times, as a header over n side-by-side replicates.
func cycle(n int, labels ...string) []any {
	out := make([]any, 0, n*len(labels))
	for i := 0; i < n; i++ {
		for _, l := range labels {
			out = append(out, l)
		}
	}

	return out
}

// replicateRow is the "Replicate 1, '', …" banner above n replicates that
// span width columns each.
func replicateRow(n, width int) []any {
	out := make([]any, 0, n*width)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("Replicate %d", i+1))
		for j := 1; j < width; j++ {
			out = append(out, "")
		}
	}

	return out
}
