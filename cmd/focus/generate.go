package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"focus-arc/internal/album"
	"focus-arc/internal/arc"
	"focus-arc/internal/audio"
	"focus-arc/internal/config"
	"focus-arc/internal/enrich"
	"focus-arc/internal/metadata"
	"focus-arc/internal/metrics"
	"focus-arc/internal/prompt"
	"focus-arc/internal/ui"
)

// arcFlags are shared by generate and preview.
type arcFlags struct {
	fs       *flag.FlagSet
	startKey *string
	startBPM *float64
	peakBPM  *float64
	endBPM   *float64
	seed     *int64
}

func newArcFlags(name string, cfg *config.Config) *arcFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &arcFlags{
		fs:       fs,
		startKey: fs.String("start-key", cfg.Arc.StartKey, "Starting Camelot key (e.g. 1A)"),
		startBPM: fs.Float64("start-bpm", cfg.Arc.StartBPM, "Starting BPM"),
		peakBPM:  fs.Float64("peak-bpm", cfg.Arc.PeakBPM, "Peak BPM"),
		endBPM:   fs.Float64("end-bpm", cfg.Arc.EndBPM, "Ending BPM"),
		seed:     fs.Int64("seed", cfg.Arc.Seed, "Random seed for the key progression (0 = time-seeded)"),
	}
}

// apply overrides only what was given on the command line, so analysis
// results survive unless the user insists.
func (f *arcFlags) apply(c *arc.Config) error {
	if isSet(f.fs, "start-key") {
		k, err := parseStartKey(*f.startKey)
		if err != nil {
			return err
		}
		c.StartKey = k
	}
	if isSet(f.fs, "start-bpm") {
		c.StartBPM = *f.startBPM
	}
	if isSet(f.fs, "peak-bpm") {
		c.PeakBPM = *f.peakBPM
	}
	if isSet(f.fs, "end-bpm") {
		c.EndBPM = *f.endBPM
	}
	return nil
}

func (f *arcFlags) composer() *arc.Composer {
	if *f.seed == 0 {
		return arc.NewComposer(nil)
	}
	return arc.NewComposer(rand.New(rand.NewSource(*f.seed)))
}

func compose(f *arcFlags, c arc.Config) ([]arc.Track, error) {
	done := metrics.Observe(metrics.StageCompose)
	tracks, err := f.composer().Compose(c)
	done(err)
	return tracks, err
}

func runGenerate(ctx context.Context, cfg *config.Config, args []string) error {
	flags := newArcFlags("generate", cfg)
	source := flags.fs.String("source", "", "Audio file to analyse for inspiration")
	name := flags.fs.String("name", cfg.Output.AlbumName, "Album name (default: generated)")
	output := flags.fs.String("output", "", "Output directory for the album summary (forces local storage)")
	if _, err := parseArgs(flags.fs, args); err != nil {
		return err
	}

	ui.Print(ui.Banner("Focus Album Arc Planner"))

	arcCfg, err := cfg.ArcConfig()
	if err != nil {
		return err
	}

	enricher := newEnricher(cfg)
	inspiration := ""
	if *source != "" {
		inspiration = inspire(ctx, cfg, enricher, *source, &arcCfg)
	}

	if err := flags.apply(&arcCfg); err != nil {
		return err
	}

	tracks, err := compose(flags, arcCfg)
	if err != nil {
		return err
	}
	ui.Success("Arc designed successfully!")
	ui.Print(ui.ArcChart(tracks))

	phases := make([]arc.Phase, len(tracks))
	for i, t := range tracks {
		phases[i] = t.Phase
	}
	spin := ui.Spin("Generating creative album and track names...")
	done := metrics.Observe(metrics.StageEnrich)
	names := enricher.Names(ctx, phases, inspiration)
	done(nil)
	spin.Stop()

	albumName := *name
	if albumName == "" {
		albumName = names.Album
	}
	ui.Print(ui.AlbumReveal(albumName, names.Tracks))

	prompts := prompt.GenerateAlbum(tracks, names.Tracks)
	ui.Success("Generated %d prompts!", len(prompts))

	if *output != "" {
		cfg.Storage.Provider = "local"
		cfg.Storage.LocalRoot = *output
		cfg.Storage.BucketAlbums = ""
	}
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	a := album.New(albumName, names.Tracks, tracks, prompts, *source)
	where, err := a.Save(store)
	if err != nil {
		return err
	}
	ui.Success("Album data saved to: %s", where)

	fmt.Print(prompt.Render(prompts))
	ui.Print(ui.Outro())
	ui.Warn("Make sure to set: Instrumental=true, Vocals=false")
	return nil
}

// inspire analyses the source recording and seeds the arc from it. Any
// failure leaves the defaults in place.
func inspire(ctx context.Context, cfg *config.Config, enricher *enrich.Enricher, source string, c *arc.Config) string {
	spin := ui.Spin("Analyzing audio file...")
	done := metrics.Observe(metrics.StageAnalyse)
	analysis, err := newAnalyzer(cfg).Analyze(ctx, source)
	done(err)
	spin.Stop()
	if err != nil {
		ui.Fail("Audio analysis failed: %v", err)
		ui.Warn("Continuing with default settings...")
		return ""
	}
	ui.Success("Analysed audio: %d BPM, %s", analysis.Tempo, analysis.Key)

	spin = ui.Spin("Analyzing mood and style with AI...")
	done = metrics.Observe(metrics.StageEnrich)
	insights := enricher.Insights(ctx, analysis)
	done(nil)
	spin.Stop()

	ui.Info("Audio Analysis")
	fmt.Printf("   Detected Tempo: %d BPM\n", analysis.Tempo)
	fmt.Printf("   Detected Key: %s\n", analysis.Key)
	fmt.Printf("   Energy Level: %.0f%%\n", analysis.Energy*100)
	ui.Info("AI Insights")
	fmt.Printf("   Mood: %s\n", strings.Join(insights.Mood, ", "))
	fmt.Printf("   Style: %s\n", insights.Style)
	fmt.Printf("   Instruments: %s\n", strings.Join(insights.Instruments, ", "))
	fmt.Printf("   Atmosphere: %s\n", insights.Atmosphere)
	fmt.Printf("   Suggested BPM Range: %d-%d\n\n", insights.SuggestedBPMRange.Min, insights.SuggestedBPMRange.Max)

	c.StartBPM = float64(insights.SuggestedBPMRange.Min)
	c.PeakBPM = float64(insights.SuggestedBPMRange.Max)
	if analysis.HasCamelot {
		c.StartKey = analysis.Camelot
	}

	tags, err := metadata.ReadTags(source)
	if err != nil {
		tags = metadata.Tags{}
	}
	return fmt.Sprintf("%s; mood: %s; style: %s", tags.Inspiration(source), strings.Join(insights.Mood, ", "), insights.Style)
}

func runPreview(cfg *config.Config, args []string) error {
	flags := newArcFlags("preview", cfg)
	if _, err := parseArgs(flags.fs, args); err != nil {
		return err
	}

	arcCfg, err := cfg.ArcConfig()
	if err != nil {
		return err
	}
	if err := flags.apply(&arcCfg); err != nil {
		return err
	}

	tracks, err := compose(flags, arcCfg)
	if err != nil {
		return err
	}
	ui.Print(ui.ArcChart(tracks))

	total, peak := arc.Summary(tracks)
	ui.Info("%d tracks, %s total, peak %d BPM", len(tracks), prompt.FormatDuration(total), peak)
	return nil
}

type analyzeReport struct {
	File     string          `json:"file"`
	Analysis *audio.Analysis `json:"analysis"`
	Camelot  string          `json:"camelotKey,omitempty"`
	Tags     metadata.Tags   `json:"tags"`
	Insights enrich.Insights `json:"insights"`
}

func runAnalyze(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("analyze needs exactly one audio file")
	}
	path := positional[0]

	spin := ui.Spin("Analyzing audio file...")
	done := metrics.Observe(metrics.StageAnalyse)
	analysis, err := newAnalyzer(cfg).Analyze(ctx, path)
	done(err)
	spin.Stop()
	if err != nil {
		return err
	}

	spin = ui.Spin("Analyzing mood and style with AI...")
	insights := newEnricher(cfg).Insights(ctx, analysis)
	spin.Stop()

	report := analyzeReport{
		File:     path,
		Analysis: analysis,
		Insights: insights,
	}
	if analysis.HasCamelot {
		report.Camelot = analysis.Camelot.String()
	}
	if tags, err := metadata.ReadTags(path); err == nil {
		report.Tags = tags
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
