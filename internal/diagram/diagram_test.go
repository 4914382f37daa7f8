package diagram

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"
)

func sampleData() BeamDiagramData {
	// q_r = 2.2, q_n = 2.0, l = 400 cm, E·J = 1e5·3333.33
	d := BeamDiagramData{Width: 50, Height: 200, Span: 4000, Material: "pine"}
	ej := 100000 * 5.0 * 20 * 20 * 20 / 12
	for i := 0; i <= 20; i++ {
		x := 400 * float64(i) / 20
		d.X = append(d.X, x)
		d.Moment = append(d.Moment, 2.2*x*(400-x)/2)
		d.Deflection = append(d.Deflection, 2.0*x*(400*400*400-2*400*x*x+x*x*x)/(24*ej))
	}
	return d
}

func TestDrawSectionSketch(t *testing.T) {
	out := DrawSectionSketch(50, 200)

	if !strings.Contains(out, "b = 50 mm") || !strings.Contains(out, "h = 200 mm") {
		t.Errorf("missing dimension labels:\n%s", out)
	}
	if strings.Count(out, "┌") != 1 || strings.Count(out, "┘") != 1 {
		t.Errorf("expected one closed rectangle:\n%s", out)
	}

	// a flat, wide section is capped in width
	wide := DrawSectionSketch(1200, 40)
	for _, line := range strings.Split(wide, "\n") {
		if n := len([]rune(line)); n > 60 {
			t.Errorf("line too long (%d runes): %q", n, line)
		}
	}
}

func TestDrawCurves(t *testing.T) {
	d := sampleData()

	m := DrawMomentCurve(d)
	if !strings.Contains(m, "Bending moment") {
		t.Errorf("unexpected moment curve:\n%s", m)
	}

	y := DrawDeflectionCurve(d)
	if !strings.Contains(y, "Deflection") {
		t.Errorf("unexpected deflection curve:\n%s", y)
	}

	if DrawMomentCurve(BeamDiagramData{}) != "" || DrawDeflectionCurve(BeamDiagramData{}) != "" {
		t.Error("empty data must draw nothing")
	}
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("RESULT", []string{"W = 333.33 cm³", "f/l = 1/200"})

	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), box)
	}
	width := len([]rune(lines[0]))
	for _, l := range lines {
		if len([]rune(l)) != width {
			t.Errorf("ragged box line %q", l)
		}
	}
}

func TestExportBeamDiagrams(t *testing.T) {
	dir := t.TempDir()

	files, err := ExportBeamDiagrams(sampleData(), filepath.Join(dir, "out", "joist.png"))
	if err != nil {
		t.Fatalf("ExportBeamDiagrams: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			t.Errorf("missing %s: %v", f, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", f)
		}
	}
	if !strings.HasSuffix(files[0], "joist-moment.png") {
		t.Errorf("unexpected file name %s", files[0])
	}
}

func TestSectionPlotSave(t *testing.T) {
	p, err := SectionPlot(50, 200)
	if err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(t.TempDir(), "section.svg")
	if err := Save(p, file); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(file); err != nil {
		t.Error(err)
	}
}

func TestRenderPNG(t *testing.T) {
	p, err := MomentPlot(sampleData())
	if err != nil {
		t.Fatal(err)
	}
	img, err := RenderPNG(p, 6*vg.Inch, 3*vg.Inch)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Error("output is not a PNG image")
	}
}

func TestPlotsRejectMismatchedSamples(t *testing.T) {
	d := sampleData()
	d.Moment = d.Moment[:3]
	if _, err := MomentPlot(d); err == nil {
		t.Error("expected error for mismatched moment samples")
	}
	if _, err := DeflectionPlot(BeamDiagramData{}); err == nil {
		t.Error("expected error for empty deflection samples")
	}
}
