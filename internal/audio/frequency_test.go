package audio

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    SacredFrequency
		wantErr bool
	}{
		{"432", 432, false},
		{"528Hz", 528, false},
		{" 1111hz ", 1111, false},
		{"440", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFrequency(%q) err = %v; wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFrequency) {
			t.Errorf("ParseFrequency(%q) err = %v; want ErrUnsupportedFrequency", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFrequency(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestFrequencies(t *testing.T) {
	freqs := Frequencies()
	if len(freqs) != 8 || freqs[0] != 432 || freqs[7] != 1111 {
		t.Fatalf("Frequencies() = %v", freqs)
	}
	for _, f := range freqs {
		if f.Name() == "" || f.Purpose() == "" {
			t.Errorf("%s has no description", f)
		}
	}
	freqs[0] = 1
	if Frequencies()[0] != 432 {
		t.Error("Frequencies() exposes its backing slice")
	}
}

func TestConvertArgs(t *testing.T) {
	got := ConvertArgs("in.mp3", "out.mp3", 528, 0)
	want := []string{"-i", "in.mp3", "-af", "asetrate=44100*1.2,aresample=44100,atempo=440/528", "-y", "out.mp3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConvertArgs = %v; want %v", got, want)
	}

	got = ConvertArgs("a.wav", "b.wav", 432, 432)
	if got[3] != "asetrate=44100*1,aresample=44100,atempo=432/432" {
		t.Errorf("identity filter = %s", got[3])
	}
}

func TestConvertArgsTempoStagesInRange(t *testing.T) {
	for _, f := range Frequencies() {
		filter := ConvertArgs("in.mp3", "out.mp3", f, BaseFrequency)[3]

		product := 1.0
		stages := 0
		for _, part := range strings.Split(filter, ",") {
			value, ok := strings.CutPrefix(part, "atempo=")
			if !ok {
				continue
			}
			stages++
			factor := evalFactor(t, value)
			if factor < 0.5 || factor > 2 {
				t.Errorf("%s: stage %s = %.3f outside [0.5, 2]", f, part, factor)
			}
			product *= factor
		}
		if stages == 0 {
			t.Fatalf("%s: no atempo stage in %s", f, filter)
		}
		want := float64(BaseFrequency) / float64(f)
		if math.Abs(product-want) > 1e-9 {
			t.Errorf("%s: tempo stages multiply to %.6f; want %.6f", f, product, want)
		}
	}
}

func TestAtempoChain(t *testing.T) {
	tests := []struct {
		num, den int
		want     []string
	}{
		{440, 528, []string{"atempo=440/528"}},
		{440, 880, []string{"atempo=440/880"}},
		{440, 1111, []string{"atempo=0.5", "atempo=880/1111"}},
		{440, 963, []string{"atempo=0.5", "atempo=880/963"}},
		{1000, 200, []string{"atempo=2.0", "atempo=2.0", "atempo=1000/800"}},
	}
	for _, tt := range tests {
		if got := atempoChain(tt.num, tt.den); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("atempoChain(%d, %d) = %v; want %v", tt.num, tt.den, got, tt.want)
		}
	}
}

// evalFactor reads "0.5" or "440/528".
func evalFactor(t *testing.T, s string) float64 {
	t.Helper()
	num, den, isFraction := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		t.Fatalf("bad factor %q: %v", s, err)
	}
	if !isFraction {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		t.Fatalf("bad factor %q: %v", s, err)
	}
	return n / d
}

func TestConvertFrequencyRejectsUnknown(t *testing.T) {
	err := ConvertFrequency(context.Background(), "in.mp3", "out.mp3", 440)
	if !errors.Is(err, ErrUnsupportedFrequency) {
		t.Errorf("err = %v; want ErrUnsupportedFrequency", err)
	}
}

func TestFormatChecks(t *testing.T) {
	tests := []struct {
		name      string
		supported bool
		batch     bool
	}{
		{"a.mp3", true, true},
		{"A.WAV", true, true},
		{"a.flac", true, false},
		{"a.opus", true, false},
		{"a.txt", false, false},
		{"mp3", false, false},
	}
	for _, tt := range tests {
		if got := IsSupportedFormat(tt.name); got != tt.supported {
			t.Errorf("IsSupportedFormat(%s) = %v", tt.name, got)
		}
		if got := IsBatchFormat(tt.name); got != tt.batch {
			t.Errorf("IsBatchFormat(%s) = %v", tt.name, got)
		}
	}
}
