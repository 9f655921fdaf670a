package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"focus-arc/internal/album"
	"focus-arc/internal/audio"
	"focus-arc/internal/config"
	"focus-arc/internal/studio"
	"focus-arc/internal/ui"
)

func runConvert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	freqFlag := fs.String("frequency", "432", "Target frequency in Hz")
	output := fs.String("output", "", "Output file or directory")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("convert needs exactly one file or directory")
	}
	input := positional[0]

	target, err := parseFrequency(*freqFlag)
	if err != nil {
		return err
	}
	ui.Print(ui.FrequencyBanner(target))

	info, err := os.Stat(input)
	if err != nil {
		return err
	}

	s := studio.New(nil, nil)
	if info.IsDir() {
		report, err := s.ConvertDir(ctx, input, *output, target)
		if err != nil {
			return err
		}
		return summarise(report, fmt.Sprintf("Album converted to %s", target))
	}

	out, err := s.ConvertFile(ctx, input, *output, target)
	if err != nil {
		return err
	}
	ui.Success("Converted to %s: %s", target, out)
	return nil
}

func runMaster(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("master", flag.ContinueOnError)
	preset := fs.String("preset", cfg.Mastering.Preset, "Mastering preset")
	reference := fs.String("reference", "", "Reference track for loudness and tone matching")
	bitDepth := fs.Int("bit-depth", cfg.Mastering.BitDepth, "Reference mastering bit depth (16, 24, 32)")
	retune := fs.String("retune", "", "Retune inside the sox pass (432, 444, 528, 1111)")
	freqFlag := fs.String("frequency", "", "Convert to this frequency after mastering")
	suffix := fs.String("suffix", "", "Suffix for mastered filenames")
	albumPath := fs.String("album", "", "Album summary (file or stored key) whose arc is written into the tags")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("master needs exactly one file or directory")
	}
	input := positional[0]

	mastering, err := newMastering(cfg)
	if err != nil {
		return err
	}

	opts := studio.MasterOptions{
		Preset:    *preset,
		Reference: *reference,
		BitDepth:  *bitDepth,
		Suffix:    *suffix,
	}
	if *retune != "" {
		if opts.Retune, err = parseFrequency(*retune); err != nil {
			return err
		}
	}
	if *freqFlag != "" {
		if opts.Frequency, err = parseFrequency(*freqFlag); err != nil {
			return err
		}
	}

	if opts.Reference != "" {
		if !audio.ValidBitDepth(opts.BitDepth) {
			return fmt.Errorf("bit depth %d not supported (16, 24, 32)", opts.BitDepth)
		}
		ui.Info("Reference mastering against %s (%d-bit)", opts.Reference, opts.BitDepth)
	} else {
		p, err := mastering.Preset(opts.Preset)
		if err != nil {
			for _, name := range mastering.PresetNames() {
				def, _ := mastering.Preset(name)
				fmt.Printf("  • %s: %s\n", name, def.Description)
			}
			return err
		}
		ui.Info("Preset: %s", opts.Preset)
		fmt.Println("   " + p.Description)
	}
	if opts.Frequency != 0 {
		ui.Info("Sacred Frequency: %s (applied after mastering)", opts.Frequency)
	}

	info, err := os.Stat(input)
	if err != nil {
		return err
	}

	s := studio.New(mastering, nil)
	var report *studio.Report
	if info.IsDir() {
		report, err = s.MasterDir(ctx, input, opts)
	} else {
		report, err = s.MasterFile(ctx, input, opts)
	}
	if err != nil {
		return err
	}
	if err := summarise(report, "Mastering complete"); err != nil {
		return err
	}

	if *albumPath == "" {
		return nil
	}
	if !info.IsDir() {
		ui.Warn("-album only tags whole album folders; skipping")
		return nil
	}
	a, err := openAlbum(cfg, *albumPath)
	if err != nil {
		return err
	}
	stamped, err := studio.StampAlbum(report.Dir, a)
	if err != nil {
		return err
	}
	return summarise(stamped, fmt.Sprintf("Tagged with the %q arc", a.Name))
}

func runPublish(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	albumPath := fs.String("album", "", "Album summary, a JSON file or a key listed by 'focus albums' (required)")
	force := fs.Bool("force", false, "Overwrite an existing release")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 || *albumPath == "" {
		return fmt.Errorf("usage: focus publish <dir> -album album.json")
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	a, err := album.Open(*albumPath, store)
	if err != nil {
		return err
	}

	report, err := studio.New(nil, store).Publish(ctx, positional[0], a, *force)
	if err != nil {
		return err
	}
	return summarise(report, fmt.Sprintf("Published %q", a.Name))
}

func runAlbums(cfg *config.Config) error {
	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	keys, err := store.ListAlbums()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		ui.Warn("No album summaries in %s", store.Location(""))
		return nil
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(ui.Out, key)
	}
	ui.Info("%d album(s) in %s", len(keys), store.Location(""))
	return nil
}

// openAlbum resolves -album against disk first, then the albums bucket.
func openAlbum(cfg *config.Config, ref string) (*album.Album, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	return album.Open(ref, store)
}

// summarise prints a batch report; any failed file makes the command fail.
func summarise(r *studio.Report, headline string) error {
	ui.Success("%s: %d file(s) in %s", headline, len(r.Outputs), r.Dir)
	if len(r.Failed) > 0 {
		for _, f := range r.Failed {
			ui.Fail("Failed: %s", f)
		}
		return fmt.Errorf("%d file(s) failed", len(r.Failed))
	}
	return nil
}
