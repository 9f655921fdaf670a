package arc

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"focus-arc/internal/audio"
)

func TestTempoForTrack(t *testing.T) {
	tests := []struct {
		index int
		want  float64
	}{
		{1, 60}, {2, 62.5}, {3, 67.5}, {4, 70}, {5, 72.5},
		{6, 75}, {7, 85}, {8, 80}, {9, 75}, {10, 60},
	}
	for _, tt := range tests {
		if got := TempoForTrack(tt.index, 60, 85, 60); got != tt.want {
			t.Errorf("TempoForTrack(%d) = %v; want %v", tt.index, got, tt.want)
		}
	}
}

func TestTempoAnchors(t *testing.T) {
	curves := [][3]float64{{60, 85, 60}, {50, 120, 40}, {72, 72, 72}, {90, 70, 110}}
	for _, c := range curves {
		s, p, e := c[0], c[1], c[2]
		if got := TempoForTrack(1, s, p, e); got != s {
			t.Errorf("track 1 of %v = %v; want start", c, got)
		}
		if got := TempoForTrack(7, s, p, e); got != p {
			t.Errorf("track 7 of %v = %v; want peak", c, got)
		}
		if got := TempoForTrack(10, s, p, e); got != e {
			t.Errorf("track 10 of %v = %v; want end", c, got)
		}
	}
}

func TestPhaseForTrack(t *testing.T) {
	if _, ok := PhaseForTrack(0); ok {
		t.Error("index 0 should be outside the table")
	}
	if _, ok := PhaseForTrack(11); ok {
		t.Error("index 11 should be outside the table")
	}
	info, ok := PhaseForTrack(7)
	if !ok || info.Phase != LockIn || info.Energy != Sustained {
		t.Errorf("PhaseForTrack(7) = %+v, %v", info, ok)
	}
	if info.Purpose != "Peak concentration, maximum cognitive capacity" {
		t.Errorf("purpose = %q", info.Purpose)
	}
}

func TestComposeDefaultScenario(t *testing.T) {
	cfg := Config{
		TotalTracks:        10,
		TotalDuration:      1500,
		StartBPM:           60,
		PeakBPM:            85,
		EndBPM:             60,
		StartKey:           audio.MustParseCamelot("1A"),
		AllowedTransitions: []audio.Transition{audio.PerfectFifth, audio.Relative},
	}

	tracks, err := NewComposer(rand.New(rand.NewSource(1))).Compose(cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(tracks) != 10 {
		t.Fatalf("got %d tracks; want 10", len(tracks))
	}

	if tracks[0].TargetKey.String() != "1A" {
		t.Errorf("track 1 key = %s; want 1A", tracks[0].TargetKey)
	}
	if tracks[0].TargetBPM != 60 || tracks[6].TargetBPM != 85 || tracks[9].TargetBPM != 60 {
		t.Errorf("BPM anchors = %d/%d/%d; want 60/85/60",
			tracks[0].TargetBPM, tracks[6].TargetBPM, tracks[9].TargetBPM)
	}
	if tracks[0].Transition != audio.SameKey {
		t.Errorf("track 1 transition = %s; want same-key", tracks[0].Transition)
	}

	wantPhases := []Phase{Arrival, Arrival, Engage, Engage, Flow, Flow, LockIn, EaseOff, EaseOff, Landing}
	total := 0
	for i, tr := range tracks {
		if tr.Number != i+1 {
			t.Errorf("track %d numbered %d", i+1, tr.Number)
		}
		if tr.Phase != wantPhases[i] {
			t.Errorf("track %d phase = %s; want %s", i+1, tr.Phase, wantPhases[i])
		}
		if tr.Duration != 150 {
			t.Errorf("track %d duration = %d; want 150", i+1, tr.Duration)
		}
		if tr.MusicalKey != audio.MusicalName(tr.TargetKey) {
			t.Errorf("track %d musical key %s does not match %s", i+1, tr.MusicalKey, tr.TargetKey)
		}
		if i > 0 {
			prev := tracks[i-1].TargetKey
			if got := audio.Classify(prev, tr.TargetKey); got != tr.Transition {
				t.Errorf("track %d transition = %s; want %s", i+1, tr.Transition, got)
			}
			if !audio.IsCompatible(prev, tr.TargetKey) {
				t.Errorf("track %d key %s not compatible with %s", i+1, tr.TargetKey, prev)
			}
		}
		total += tr.Duration
	}
	if total != 1500 {
		t.Errorf("total duration = %d; want 1500", total)
	}
}

func TestComposeRoundsHalfSteps(t *testing.T) {
	tracks, err := NewComposer(rand.New(rand.NewSource(3))).Compose(Config{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := []int{60, 63, 68, 70, 73, 75, 85, 80, 75, 60}
	for i, tr := range tracks {
		if tr.TargetBPM != want[i] {
			t.Errorf("track %d BPM = %d; want %d", i+1, tr.TargetBPM, want[i])
		}
	}
}

func TestComposeDropsRemainder(t *testing.T) {
	tracks, err := NewComposer(rand.New(rand.NewSource(3))).Compose(Config{TotalDuration: 1509})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	total, _ := Summary(tracks)
	if tracks[0].Duration != 150 || total != 1500 {
		t.Errorf("duration = %d, total = %d; want 150 and 1500", tracks[0].Duration, total)
	}
}

func TestComposePreconditions(t *testing.T) {
	c := NewComposer(rand.New(rand.NewSource(3)))

	if _, err := c.Compose(Config{TotalTracks: 12}); !errors.Is(err, ErrUnsupportedTrackCount) {
		t.Errorf("12 tracks: err = %v; want ErrUnsupportedTrackCount", err)
	}
	bad := Config{StartKey: audio.CamelotKey{Num: 13, Letter: audio.Minor}}
	if _, err := c.Compose(bad); !errors.Is(err, ErrInvalidStartKey) {
		t.Errorf("13A: err = %v; want ErrInvalidStartKey", err)
	}
}

func TestComposeRepeatable(t *testing.T) {
	cfg := Config{StartKey: audio.MustParseCamelot("9B")}

	a, err := NewComposer(rand.New(rand.NewSource(99))).Compose(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewComposer(rand.New(rand.NewSource(99))).Compose(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Errorf("same seed produced different arcs:\n%s\n%s", ja, jb)
	}
}

func TestTrackJSON(t *testing.T) {
	tracks, err := NewComposer(rand.New(rand.NewSource(5))).Compose(Config{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(tracks[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"number":1,"phase":"arrival","targetBPM":60,"targetKey":"1A","musicalKey":"A♭m","energy":"low","transition":"same-key","duration":150}`
	if string(data) != want {
		t.Errorf("json = %s\nwant  %s", data, want)
	}

	var back Track
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != tracks[0] {
		t.Errorf("round trip = %+v; want %+v", back, tracks[0])
	}
}
