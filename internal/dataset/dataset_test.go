package dataset

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spikenav/spikenav/internal/models"
)

const validCSV = `front,left,right,back,action
100,80,90,120,move_forward
20,60,70,100,turn_right
10,15,12,80,stop
`

func TestReadValid(t *testing.T) {
	samples, err := Read(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}

	first := samples[0]
	want := models.Readings{100, 80, 90, 120}
	if first.Readings != want {
		t.Errorf("readings = %v, want %v", first.Readings, want)
	}
	if first.Target != models.ActionMoveForward {
		t.Errorf("target = %v, want move_forward", first.Target)
	}
	if samples[2].Target != models.ActionStop {
		t.Errorf("third target = %v, want stop", samples[2].Target)
	}
}

func TestReadRejectsBadHeader(t *testing.T) {
	csv := "f,l,r,b,a\n100,80,90,120,stop\n"
	if _, err := Read(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for bad header")
	}
}

func TestReadRejectsMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
	}{
		{"non-numeric distance", "abc,80,90,120,stop"},
		{"unknown action", "100,80,90,120,reverse"},
		{"missing column", "100,80,90,stop"},
		{"nan distance", "NaN,80,90,120,stop"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			csv := "front,left,right,back,action\n" + tc.row + "\n"
			if _, err := Read(strings.NewReader(csv)); err == nil {
				t.Fatalf("row %q accepted", tc.row)
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	samples := Generate(25, rand.New(rand.NewSource(42)))

	var buf bytes.Buffer
	if err := Write(&buf, samples); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i].Readings != samples[i].Readings || got[i].Target != samples[i].Target {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], samples[i])
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensor_data.csv")
	samples := Generate(10, rand.New(rand.NewSource(1)))

	if err := Save(path, samples); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
}

func TestGenerateLabelsFollowPolicy(t *testing.T) {
	samples := Generate(500, rand.New(rand.NewSource(7)))
	for i, s := range samples {
		for j, d := range s.Readings {
			if d < 5 || d >= 200 {
				t.Fatalf("sample %d sensor %d = %v outside [5, 200)", i, j, d)
			}
		}
		if want := Label(s.Readings); s.Target != want {
			t.Errorf("sample %d labelled %v, policy says %v", i, s.Target, want)
		}
	}
}

func TestLabelPolicyCases(t *testing.T) {
	cases := []struct {
		readings models.Readings
		want     models.Action
	}{
		{models.Readings{10, 100, 100, 100}, models.ActionStop},      // critical front
		{models.Readings{100, 14, 100, 100}, models.ActionStop},      // critical left
		{models.Readings{25, 90, 60, 100}, models.ActionTurnLeft},    // blocked front, left freer
		{models.Readings{25, 60, 90, 100}, models.ActionTurnRight},   // blocked front, right freer
		{models.Readings{45, 100, 100, 100}, models.ActionSlowDown},  // moderate front clutter
		{models.Readings{100, 25, 100, 100}, models.ActionSlowDown},  // close-ish left
		{models.Readings{100, 35, 100, 100}, models.ActionTurnRight}, // left flank
		{models.Readings{100, 100, 35, 100}, models.ActionTurnLeft},  // right flank
		{models.Readings{100, 80, 90, 120}, models.ActionMoveForward},
	}
	for _, tc := range cases {
		if got := Label(tc.readings); got != tc.want {
			t.Errorf("Label(%v) = %v, want %v", tc.readings, got, tc.want)
		}
	}
}

func TestSplit(t *testing.T) {
	samples := Generate(100, rand.New(rand.NewSource(3)))
	train, test, err := Split(samples, 0.2, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(train) != 80 || len(test) != 20 {
		t.Fatalf("split sizes = %d/%d, want 80/20", len(train), len(test))
	}

	// Partition: every input sample appears exactly once across the splits.
	seen := make(map[models.TrainingSample]int)
	for _, s := range samples {
		seen[s]++
	}
	for _, s := range append(append([]models.TrainingSample{}, train...), test...) {
		seen[s]--
	}
	for s, n := range seen {
		if n != 0 {
			t.Fatalf("sample %+v unbalanced by %d after split", s, n)
		}
	}
}

func TestSplitReproducible(t *testing.T) {
	samples := Generate(50, rand.New(rand.NewSource(3)))
	train1, test1, _ := Split(samples, 0.2, rand.New(rand.NewSource(9)))
	train2, test2, _ := Split(samples, 0.2, rand.New(rand.NewSource(9)))

	for i := range train1 {
		if train1[i] != train2[i] {
			t.Fatal("identically seeded splits differ")
		}
	}
	for i := range test1 {
		if test1[i] != test2[i] {
			t.Fatal("identically seeded splits differ")
		}
	}
}

func TestSplitRejectsBadFraction(t *testing.T) {
	samples := Generate(10, rand.New(rand.NewSource(1)))
	for _, f := range []float64{-0.1, 1.0, 1.5} {
		if _, _, err := Split(samples, f, rand.New(rand.NewSource(1))); err == nil {
			t.Errorf("Split accepted fraction %v", f)
		}
	}
}
