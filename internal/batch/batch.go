package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gotb/internal/calculator"
	"github.com/alexiusacademia/gotb/internal/logger"
	"github.com/alexiusacademia/gotb/internal/timber"
	"github.com/xuri/excelize/v2"
)

// Input sheet columns, in order
var inputColumns = []string{"name", "width", "height", "material", "normal_load", "rated_load", "span"}

// Output columns appended after the inputs
var outputColumns = []string{"W_cm3", "J_cm4", "Mmax_kgf_cm", "Wreq_cm3", "f_l", "error"}

// Case is one row of the input sheet
type Case struct {
	Row    int // 1-based spreadsheet row
	Inputs calculator.Inputs

	// ParseErr is set when a cell could not be read as a number
	ParseErr error
}

// Result is a calculated case
type Result struct {
	Case
	Outputs calculator.Outputs
	Err     error
}

// Read parses cases from the first sheet of an xlsx workbook. The first row
// is a header; empty rows are skipped. Empty numeric cells keep the defaults
// of a new session.
func Read(r io.Reader) ([]Case, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var cases []Case
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		in, err := parseRow(row)
		cases = append(cases, Case{Row: i + 1, Inputs: in, ParseErr: err})
	}
	return cases, nil
}

func parseRow(row []string) (calculator.Inputs, error) {
	in := calculator.DefaultInputs()

	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	in.Name = cell(0)
	in.Material = cell(3)

	numbers := []struct {
		col int
		dst *float64
	}{
		{1, &in.Width},
		{2, &in.Height},
		{4, &in.NormalLoad},
		{5, &in.RatedLoad},
		{6, &in.Span},
	}
	for _, n := range numbers {
		s := cell(n.col)
		if s == "" {
			continue
		}
		v, err := parseNumber(s)
		if err != nil {
			return in, fmt.Errorf("column %s: %q is not a number", inputColumns[n.col], s)
		}
		*n.dst = v
	}
	return in, nil
}

// parseNumber reads a cell value. A single comma is a decimal separator
// ("2,5" is 2.5); thousands separators such as "4,000.5" or "1,000,000"
// are rejected rather than guessed.
func parseNumber(s string) (float64, error) {
	commas := strings.Count(s, ",")
	if commas > 1 || (commas == 1 && strings.Contains(s, ".")) {
		return 0, fmt.Errorf("ambiguous separators in %q", s)
	}
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Run calculates every case in a fresh session built from materials
func Run(cases []Case, materials []timber.Material, log *logger.Logger) ([]Result, error) {
	if err := timber.Validate(materials); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		res := Result{Case: c}
		if c.ParseErr != nil {
			res.Err = c.ParseErr
			log.Warn("row %d: %v", c.Row, c.ParseErr)
			results = append(results, res)
			continue
		}

		s, err := calculator.New(materials)
		if err != nil {
			return nil, err
		}
		if err := s.Apply(c.Inputs); err != nil {
			res.Err = err
		} else {
			res.Outputs, res.Err = s.Outputs()
		}

		if res.Err != nil {
			log.Warn("row %d (%s): %v", c.Row, c.Inputs.Name, res.Err)
		} else {
			log.Debug("row %d (%s): Wreq=%.3f f/l=%.6f", c.Row, c.Inputs.Name,
				res.Outputs.RequiredSectionModulus, res.Outputs.DeflectionRatio)
		}
		results = append(results, res)
	}
	return results, nil
}

// Write stores results as an xlsx workbook with the inputs followed by the
// outputs of every case
func Write(w io.Writer, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(inputColumns)+len(outputColumns))
	for _, c := range inputColumns {
		header = append(header, c)
	}
	for _, c := range outputColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range results {
		in := r.Inputs
		row := []interface{}{in.Name, in.Width, in.Height, in.Material, in.NormalLoad, in.RatedLoad, in.Span}
		if r.Err != nil {
			row = append(row, nil, nil, nil, nil, nil, r.Err.Error())
		} else {
			o := r.Outputs
			row = append(row, o.SectionModulus, o.MomentOfInertia, o.MaxBendingMoment,
				o.RequiredSectionModulus, o.DeflectionRatio, "")
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
