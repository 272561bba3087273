package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/colorfield/internal/field"
	"github.com/san-kum/colorfield/internal/palette"
	"github.com/san-kum/colorfield/internal/trace"
)

var t0 = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func testResult() *trace.Result {
	return &trace.Result{
		Samples: []trace.Sample{
			{Time: t0, Color: palette.Baseline, Label: "living"},
			{Time: t0.Add(500 * time.Millisecond), Color: palette.Gray(101), Label: "living"},
			{Time: t0.Add(time.Second), Color: palette.NearWhite, Label: "pinned-white"},
		},
		Metrics: map[string]float64{
			"mean_level": 150,
		},
	}
}

func fixedStore(dir string, at time.Time) *Store {
	st := New(dir)
	st.now = func() time.Time { return at }
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := fixedStore(t.TempDir(), t0)
	result := testResult()

	meta := RunMetadata{
		Source: "field",
		Preset: "parity",
		From:   t0,
		Span:   time.Second,
		Step:   500 * time.Millisecond,
		Events: []trace.Event{{At: time.Second, Command: field.CmdPinWhite}},
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != "field_1792143000" {
		t.Errorf("unexpected run id %q", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := meta
	want.ID = runID
	want.Timestamp = t0
	want.Samples = 3
	want.Metrics = result.Metrics
	if diff := cmp.Diff(want, *loaded); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if diff := cmp.Diff(result.Samples, samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSaveCollision(t *testing.T) {
	st := fixedStore(t.TempDir(), t0)

	first, err := st.Save(RunMetadata{Source: "hover"}, testResult())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(RunMetadata{Source: "hover"}, testResult())
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("runs saved in the same second share id %q", first)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()

	runs, err := New(filepath.Join(dir, "missing")).List()
	if err != nil {
		t.Fatalf("list of missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := fixedStore(dir, t0.Add(time.Hour)).Save(RunMetadata{Source: "field"}, testResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := fixedStore(dir, t0).Save(RunMetadata{Source: "hover"}, testResult()); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = New(dir).List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Source != "hover" || runs[1].Source != "field" {
		t.Errorf("runs not ordered by time: %s, %s", runs[0].Source, runs[1].Source)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Load: expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSamples("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadSamples: expected ErrRunNotFound, got %v", err)
	}
}

func TestLoadSamplesSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runDir := filepath.Join(dir, "manual")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	csvData := "time,r,g,b,label,hex\n" +
		"2026-10-16T09:30:00Z,99,99,99,living,#636363\n" +
		"not-a-time,1,2,3,living,#010203\n" +
		"2026-10-16T09:30:01Z,300,0,0,living,#ff0000\n" +
		"short\n"
	if err := os.WriteFile(filepath.Join(runDir, samplesFile), []byte(csvData), 0644); err != nil {
		t.Fatal(err)
	}

	samples, err := st.LoadSamples("manual")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(samples) != 1 || samples[0].Color != palette.Baseline {
		t.Errorf("expected one baseline sample, got %+v", samples)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{ID: "field_1", Source: "field"}
	if err := ExportJSON(&buf, meta, testResult().Samples); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Run.ID != "field_1" {
		t.Errorf("run id = %q", data.Run.ID)
	}
	if len(data.Samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(data.Samples))
	}
	if data.Samples[2].Hex != "#fafafa" || data.Samples[2].RGB != [3]uint8{250, 250, 250} {
		t.Errorf("unexpected sample %+v", data.Samples[2])
	}
}
