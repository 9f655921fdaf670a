package main

import (
	"bytes"
	"flag"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"focus-arc/internal/album"
	"focus-arc/internal/arc"
	"focus-arc/internal/config"
	"focus-arc/internal/prompt"
	"focus-arc/internal/ui"
)

func TestParseArgs(t *testing.T) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	freq := fs.String("frequency", "432", "")
	out := fs.String("output", "", "")

	positional, err := parseArgs(fs, []string{"album/", "-frequency", "528", "-output", "x"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !reflect.DeepEqual(positional, []string{"album/"}) || *freq != "528" || *out != "x" {
		t.Errorf("positional = %v, frequency = %s, output = %s", positional, *freq, *out)
	}
	if !isSet(fs, "frequency") || isSet(fs, "missing") {
		t.Error("isSet misreports flags")
	}
}

func TestParseStartKeyListsValidKeys(t *testing.T) {
	if _, err := parseStartKey("13A"); err == nil || !strings.Contains(err.Error(), "1A, 1B, 2A") {
		t.Errorf("err = %v", err)
	}
	if k, err := parseStartKey("8b"); err != nil || k.String() != "8B" {
		t.Errorf("parseStartKey(8b) = %s, %v", k, err)
	}
}

func TestParseFrequencyListsValid(t *testing.T) {
	if _, err := parseFrequency("440"); err == nil || !strings.Contains(err.Error(), "432, 444, 528") {
		t.Errorf("err = %v", err)
	}
}

func TestOpenAlbumFromStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Provider = "local"
	cfg.Storage.LocalRoot = t.TempDir()
	cfg.Storage.BucketAlbums = "albums"

	store, err := newStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	tracks, err := arc.NewComposer(rand.New(rand.NewSource(1))).Compose(arc.Config{})
	if err != nil {
		t.Fatal(err)
	}
	a := album.New("Quiet Hours", nil, tracks, prompt.GenerateAlbum(tracks, nil), "")
	if _, err := a.Save(store); err != nil {
		t.Fatal(err)
	}

	got, err := openAlbum(cfg, a.FileName())
	if err != nil {
		t.Fatalf("openAlbum(%s): %v", a.FileName(), err)
	}
	if got.ID != a.ID {
		t.Errorf("openAlbum = %s; want %s", got.ID, a.ID)
	}

	var buf bytes.Buffer
	old := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = old })
	if err := runAlbums(cfg); err != nil {
		t.Fatalf("runAlbums: %v", err)
	}
	if !strings.Contains(buf.String(), a.FileName()) {
		t.Errorf("albums listing = %q", buf.String())
	}
}
