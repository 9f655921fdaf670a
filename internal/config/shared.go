package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"focus-arc/internal/arc"
	"focus-arc/internal/audio"
)

type Config struct {
	Arc struct {
		TotalDuration int      `mapstructure:"total_duration" yaml:"total_duration"`
		StartBPM      float64  `mapstructure:"start_bpm" yaml:"start_bpm"`
		PeakBPM       float64  `mapstructure:"peak_bpm" yaml:"peak_bpm"`
		EndBPM        float64  `mapstructure:"end_bpm" yaml:"end_bpm"`
		StartKey      string   `mapstructure:"start_key" yaml:"start_key"`
		Transitions   []string `mapstructure:"transitions" yaml:"transitions"`
		Seed          int64    `mapstructure:"seed" yaml:"seed"` // 0 = time-seeded
	} `mapstructure:"arc" yaml:"arc"`
	Output struct {
		AlbumName string `mapstructure:"album_name" yaml:"album_name"`
	} `mapstructure:"output" yaml:"output"`
	Analysis struct {
		Backend  string `mapstructure:"backend" yaml:"backend"` // essentia | script
		Python   string `mapstructure:"python" yaml:"python"`
		Script   string `mapstructure:"script" yaml:"script"`
		TempDir  string `mapstructure:"temp_dir" yaml:"temp_dir"`
		Timeout  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		Essentia string `mapstructure:"essentia_bin" yaml:"essentia_bin"`
	} `mapstructure:"analysis" yaml:"analysis"`
	Enrich struct {
		APIKey  string `mapstructure:"api_key" yaml:"api_key"`
		BaseURL string `mapstructure:"base_url" yaml:"base_url"`
		Model   string `mapstructure:"model" yaml:"model"`
		Timeout int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"enrich" yaml:"enrich"`
	Mastering struct {
		Preset          string `mapstructure:"preset" yaml:"preset"`
		PresetsFile     string `mapstructure:"presets_file" yaml:"presets_file"`
		ReferenceScript string `mapstructure:"reference_script" yaml:"reference_script"`
		Python          string `mapstructure:"python" yaml:"python"`
		BitDepth        int    `mapstructure:"bit_depth" yaml:"bit_depth"`
	} `mapstructure:"mastering" yaml:"mastering"`
	Storage struct {
		Provider     string `mapstructure:"provider" yaml:"provider"` // local | s3
		LocalRoot    string `mapstructure:"local_root" yaml:"local_root"`
		KeyID        string `mapstructure:"key_id" yaml:"key_id"`
		AppKey       string `mapstructure:"app_key" yaml:"app_key"`
		Endpoint     string `mapstructure:"endpoint" yaml:"endpoint"`
		Region       string `mapstructure:"region" yaml:"region"`
		BucketAlbums string `mapstructure:"bucket_albums" yaml:"bucket_albums"`
		BucketAudio  string `mapstructure:"bucket_audio" yaml:"bucket_audio"`
	} `mapstructure:"storage" yaml:"storage"`
	Metrics struct {
		Textfile string `mapstructure:"textfile" yaml:"textfile"`
	} `mapstructure:"metrics" yaml:"metrics"`
}

var defaults = map[string]any{
	"arc.total_duration": 1500,
	"arc.start_bpm":      60,
	"arc.peak_bpm":       85,
	"arc.end_bpm":        60,
	"arc.start_key":      "1A",
	"arc.transitions":    []string{"perfect-fifth", "relative"},
	"arc.seed":           0,

	"output.album_name": "",

	"analysis.backend":         "script",
	"analysis.python":          "venv/bin/python3",
	"analysis.script":          "scripts/analyze-audio.py",
	"analysis.temp_dir":        "/tmp/",
	"analysis.timeout_seconds": 120,
	"analysis.essentia_bin":    "streaming_extractor_music",

	"enrich.api_key":         "",
	"enrich.base_url":        "https://generativelanguage.googleapis.com/v1beta",
	"enrich.model":           "gemini-3-flash-preview",
	"enrich.timeout_seconds": 30,

	"mastering.preset":           "warm-handpan",
	"mastering.presets_file":     "",
	"mastering.reference_script": "scripts/reference-master.py",
	"mastering.python":           "venv/bin/python3",
	"mastering.bit_depth":        24,

	"storage.provider":      "local",
	"storage.local_root":    "./output",
	"storage.key_id":        "",
	"storage.app_key":       "",
	"storage.endpoint":      "",
	"storage.region":        "us-east-1",
	"storage.bucket_albums": "",
	"storage.bucket_audio":  "published",

	"metrics.textfile": "",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FOCUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register keys so AutomaticEnv picks them up during Unmarshal
	for key, val := range defaults {
		v.SetDefault(key, val)
		v.BindEnv(key)
	}

	// The generative-text key is usually exported under its vendor name.
	v.BindEnv("enrich.api_key", "FOCUS_ENRICH_API_KEY", "GEMINI_API_KEY")

	return v
}

// Load reads defaults, then config.yaml (if present), then FOCUS_* env vars.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
		log.Println("Info: config.yaml not found, using defaults and environment variables.")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	return &cfg, nil
}

// ArcConfig converts the arc section into a planning configuration.
func (c *Config) ArcConfig() (arc.Config, error) {
	out := arc.Config{
		TotalTracks:   arc.SupportedTracks,
		TotalDuration: c.Arc.TotalDuration,
		StartBPM:      c.Arc.StartBPM,
		PeakBPM:       c.Arc.PeakBPM,
		EndBPM:        c.Arc.EndBPM,
	}

	if c.Arc.StartKey != "" {
		k, err := audio.ParseCamelot(c.Arc.StartKey)
		if err != nil {
			return arc.Config{}, fmt.Errorf("config: arc.start_key: %w", err)
		}
		out.StartKey = k
	}

	for _, name := range c.Arc.Transitions {
		tr, err := audio.ParseTransition(name)
		if err != nil {
			return arc.Config{}, fmt.Errorf("config: arc.transitions: %w", err)
		}
		out.AllowedTransitions = append(out.AllowedTransitions, tr)
	}

	return out.WithDefaults(), nil
}

// WriteDefault writes a config.yaml populated with the built-in defaults.
// An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}

	var cfg Config
	if err := newViper().Unmarshal(&cfg); err != nil {
		return fmt.Errorf("config: decode defaults: %w", err)
	}
	// Secrets stay in the environment.
	cfg.Enrich.APIKey = ""
	cfg.Storage.KeyID = ""
	cfg.Storage.AppKey = ""

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	header := "# focus-arc configuration. Every key can be overridden with FOCUS_<SECTION>_<KEY>.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}
