package metadata

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"focus-arc/internal/arc"
	"focus-arc/internal/audio"
)

func lockInTrack() arc.Track {
	return arc.Track{
		Number:     7,
		Phase:      arc.LockIn,
		TargetBPM:  85,
		TargetKey:  audio.MustParseCamelot("3A"),
		MusicalKey: "B♭m",
		Energy:     arc.Sustained,
		Transition: audio.PerfectFifth,
		Duration:   150,
	}
}

func TestArcTags(t *testing.T) {
	tags := ArcTags(lockInTrack(), "The Peak", "Tidal Mind", 10)

	want := map[string]string{
		"TITLE":       "The Peak",
		"ALBUM":       "Tidal Mind",
		"TRACKNUMBER": "7/10",
		"BPM":         "85",
		"KEY":         "B♭m",
	}
	for k, v := range want {
		if tags[k] != v {
			t.Errorf("%s = %q; want %q", k, tags[k], v)
		}
	}
	if !strings.HasPrefix(tags["COMMENT"], "3A ") || !strings.Contains(tags["COMMENT"], "lockin") {
		t.Errorf("COMMENT = %q", tags["COMMENT"])
	}
}

func TestStampMP3RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "07.mp3")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 64), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Stamp(path, ArcTags(lockInTrack(), "The Peak", "Tidal Mind", 10)); err != nil {
		t.Fatalf("Stamp: %v", err)
	}

	got, err := ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags: %v", err)
	}
	if got.Title != "The Peak" || got.Album != "Tidal Mind" || got.Genre != "Focus" {
		t.Errorf("tags = %+v", got)
	}
}

// minimalFLAC is a stream marker plus an empty STREAMINFO block.
func minimalFLAC() []byte {
	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.WriteByte(0x80) // last block, type STREAMINFO
	buf.Write([]byte{0, 0, 34})
	buf.Write(make([]byte, 34))
	return buf.Bytes()
}

func TestStampFLACRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "07.flac")
	if err := os.WriteFile(path, minimalFLAC(), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Stamp(path, ArcTags(lockInTrack(), "The Peak", "Tidal Mind", 10)); err != nil {
		t.Fatalf("Stamp: %v", err)
	}

	got, err := ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags: %v", err)
	}
	if got.Title != "The Peak" || got.Album != "Tidal Mind" {
		t.Errorf("tags = %+v", got)
	}
}

func TestVorbisCommentLayout(t *testing.T) {
	data := vorbisComment(map[string]string{"TITLE": "x", "ALBUM": "y", "EMPTY": ""})

	r := bytes.NewReader(data)
	var n uint32
	binary.Read(r, binary.LittleEndian, &n)
	vend := make([]byte, n)
	r.Read(vend)
	if string(vend) != vendor {
		t.Fatalf("vendor = %q", vend)
	}
	binary.Read(r, binary.LittleEndian, &n)
	if n != 2 {
		t.Fatalf("comment count = %d; want 2", n)
	}
	binary.Read(r, binary.LittleEndian, &n)
	first := make([]byte, n)
	r.Read(first)
	if string(first) != "ALBUM=y" {
		t.Errorf("first comment = %q; want sorted ALBUM=y", first)
	}
}

func TestStampUnsupported(t *testing.T) {
	if err := Stamp("a.wav", map[string]string{}); err == nil {
		t.Error("expected error for wav")
	}
}

func TestInspiration(t *testing.T) {
	full := Tags{Title: "Kali", Artist: "Hang Massive", Album: "Beats", Genre: "Ambient"}
	if got := full.Inspiration("x.mp3"); got != "Kali by Hang Massive from Beats (Ambient)" {
		t.Errorf("Inspiration = %q", got)
	}
	if got := (Tags{}).Inspiration("/music/morning_handpan-jam.mp3"); got != "morning handpan jam" {
		t.Errorf("untagged Inspiration = %q", got)
	}
}
