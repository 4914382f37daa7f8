package batch

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/alexiusacademia/gotb/internal/beam"
	"github.com/alexiusacademia/gotb/internal/section"
	"github.com/alexiusacademia/gotb/internal/timber"
	"github.com/xuri/excelize/v2"
)

// workbook builds an xlsx file in memory from rows
func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func header() []interface{} {
	return []interface{}{"name", "width", "height", "material", "normal_load", "rated_load", "span"}
}

func TestReadRunWrite(t *testing.T) {
	in := workbook(t, [][]interface{}{
		header(),
		{"default joist", 50, 200, "pine", 2.0, 2.2, 4000},
		{"lvl joist", 50, 200, "ultralam_r", 2.0, 2.2, 4000},
		{},
		{"bad span", 50, 200, "pine", 2.0, 2.2, 0},
		{"oak", 50, 200, "oak", 2.0, 2.2, 4000},
		{"typo", "5O", 200, "pine", 2.0, 2.2, 4000},
		{"defaults only"},
	})

	cases, err := Read(in)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(cases) != 6 {
		t.Fatalf("expected 6 cases (blank row skipped), got %d", len(cases))
	}
	if cases[2].Row != 5 {
		t.Errorf("expected spreadsheet row 5 for the third case, got %d", cases[2].Row)
	}
	if cases[4].ParseErr == nil {
		t.Error("expected a parse error for \"5O\"")
	}

	results, err := Run(cases, timber.Defaults(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if results[0].Err != nil || results[1].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", results[0].Err, results[1].Err)
	}
	if got, want := results[1].Outputs.RequiredSectionModulus, results[0].Outputs.RequiredSectionModulus/2; math.Abs(got-want) > 1e-9 {
		t.Errorf("Wreq for LVL = %v, want %v", got, want)
	}
	if !errors.Is(results[2].Err, beam.ErrInvalidSpan) {
		t.Errorf("expected ErrInvalidSpan, got %v", results[2].Err)
	}
	if !errors.Is(results[3].Err, timber.ErrUnknownMaterial) {
		t.Errorf("expected ErrUnknownMaterial, got %v", results[3].Err)
	}
	if results[4].Err == nil {
		t.Error("expected the parse error to be reported")
	}
	if results[5].Err != nil || results[5].Inputs.Span != 4000 {
		t.Errorf("defaults-only row: err=%v inputs=%+v", results[5].Err, results[5].Inputs)
	}

	var out bytes.Buffer
	if err := Write(&out, results); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 7 {
		t.Fatalf("expected header + 6 rows, got %d", len(rows))
	}
	if rows[0][7] != "W_cm3" || rows[0][12] != "error" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	w, err := strconv.ParseFloat(rows[1][7], 64)
	if err != nil {
		t.Fatalf("W cell %q: %v", rows[1][7], err)
	}
	if want := section.NewRectangular().SectionModulus(); math.Abs(w-want) > 1e-6 {
		t.Errorf("W = %v, want %v", w, want)
	}
	if len(rows[3]) < 13 || rows[3][12] == "" {
		t.Errorf("expected an error message for the bad span row, got %v", rows[3])
	}
}

func TestReadRejectsEmptySheet(t *testing.T) {
	if _, err := Read(workbook(t, [][]interface{}{header()})); err == nil {
		t.Error("expected error for a sheet without data rows")
	}
	if _, err := Read(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Error("expected error for invalid workbook")
	}
}

func TestRunRejectsEmptyCatalog(t *testing.T) {
	if _, err := Run(nil, nil, nil); !errors.Is(err, timber.ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"4000", 4000, false},
		{"4.5", 4.5, false},
		{"2,5", 2.5, false},
		{"4,000", 4, false},
		{"4,000.5", 0, true},
		{"1,000,000", 0, true},
		{"1.000,5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumber(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
