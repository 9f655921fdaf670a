package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"focus-arc/internal/audio"
	"focus-arc/internal/config"
	"focus-arc/internal/enrich"
	"focus-arc/internal/metrics"
	"focus-arc/internal/storage"
	"focus-arc/internal/ui"
)

const usage = `focus - plan and finish 10-track focus albums

Usage:
  focus generate    [-source file] [-name n] [-start-key 1A] [-start-bpm 60] [-peak-bpm 85] [-end-bpm 60] [-output dir] [-seed n]
  focus preview     [-start-key 1A] [-start-bpm 60] [-peak-bpm 85] [-end-bpm 60] [-seed n]
  focus analyze     <file>
  focus convert     <file|dir> [-frequency 432] [-output path]
  focus master      <file|dir> [-preset warm-handpan] [-reference file] [-bit-depth 24] [-retune hz] [-frequency hz] [-suffix s] [-album album.json]
  focus publish     <dir> -album album.json [-force]
  focus albums
  focus frequencies
  focus init-config [path]
`

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	// init-config must work before a config exists
	if cmd == "init-config" {
		path := "config.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			ui.Fail("%v", err)
			os.Exit(1)
		}
		ui.Success("Wrote %s", path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var runErr error
	switch cmd {
	case "generate":
		runErr = runGenerate(ctx, cfg, args)
	case "preview":
		runErr = runPreview(cfg, args)
	case "analyze":
		runErr = runAnalyze(ctx, cfg, args)
	case "convert":
		runErr = runConvert(ctx, args)
	case "master":
		runErr = runMaster(ctx, cfg, args)
	case "publish":
		runErr = runPublish(ctx, cfg, args)
	case "albums":
		runErr = runAlbums(cfg)
	case "frequencies":
		ui.Print(ui.FrequencyList())
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		log.Printf("⚠️ Could not write metrics textfile: %v", err)
	}

	if runErr != nil {
		ui.Fail("%v", runErr)
		os.Exit(1)
	}
}

// parseArgs lets positional arguments and flags appear in any order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

// isSet reports whether name was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func parseStartKey(s string) (audio.CamelotKey, error) {
	k, err := audio.ParseCamelot(s)
	if err != nil {
		names := make([]string, 0, 24)
		for _, key := range audio.AllKeys() {
			names = append(names, key.String())
		}
		return k, fmt.Errorf("%w\nvalid keys: %s", err, strings.Join(names, ", "))
	}
	return k, nil
}

func parseFrequency(s string) (audio.SacredFrequency, error) {
	f, err := audio.ParseFrequency(s)
	if err != nil {
		names := make([]string, 0, 8)
		for _, freq := range audio.Frequencies() {
			names = append(names, fmt.Sprint(int(freq)))
		}
		return 0, fmt.Errorf("%w\nvalid frequencies: %s", err, strings.Join(names, ", "))
	}
	return f, nil
}

func newEnricher(cfg *config.Config) *enrich.Enricher {
	if cfg.Enrich.APIKey == "" {
		return enrich.NewEnricher(nil)
	}
	timeout := time.Duration(cfg.Enrich.Timeout) * time.Second
	return enrich.NewEnricher(enrich.NewClient(cfg.Enrich.BaseURL, cfg.Enrich.Model, cfg.Enrich.APIKey, timeout))
}

func newAnalyzer(cfg *config.Config) *audio.Analyzer {
	return &audio.Analyzer{
		Backend:  cfg.Analysis.Backend,
		Python:   cfg.Analysis.Python,
		Script:   cfg.Analysis.Script,
		Essentia: cfg.Analysis.Essentia,
		TempDir:  cfg.Analysis.TempDir,
		Timeout:  time.Duration(cfg.Analysis.Timeout) * time.Second,
	}
}

func newMastering(cfg *config.Config) (*audio.Mastering, error) {
	presets, err := audio.LoadPresets(cfg.Mastering.PresetsFile)
	if err != nil {
		return nil, err
	}
	return audio.NewMastering(presets, cfg.Mastering.Python, cfg.Mastering.ReferenceScript), nil
}

func newStore(cfg *config.Config) (*storage.Client, error) {
	return storage.New(cfg)
}
