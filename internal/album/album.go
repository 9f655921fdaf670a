// Package album holds the JSON summary written for every generated album.
package album

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"focus-arc/internal/arc"
	"focus-arc/internal/prompt"
	"focus-arc/internal/utils"
)

type Album struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	TrackNames        []string        `json:"trackNames"`
	CreatedAt         time.Time       `json:"createdAt"`
	TotalTracks       int             `json:"totalTracks"`
	TotalDuration     int             `json:"totalDuration"`
	InspirationSource string          `json:"inspirationSource,omitempty"`
	Arc               []arc.Track     `json:"arc"`
	Prompts           []prompt.Prompt `json:"prompts"`
}

func New(name string, trackNames []string, tracks []arc.Track, prompts []prompt.Prompt, source string) *Album {
	total, _ := arc.Summary(tracks)
	return &Album{
		ID:                uuid.New(),
		Name:              name,
		Slug:              utils.Slugify(name, "album"),
		TrackNames:        trackNames,
		CreatedAt:         time.Now().UTC(),
		TotalTracks:       len(tracks),
		TotalDuration:     total,
		InspirationSource: source,
		Arc:               tracks,
		Prompts:           prompts,
	}
}

// FileName is "<slug>-<YYYY-MM-DD>.json", dated by creation.
func (a *Album) FileName() string {
	return fmt.Sprintf("%s-%s.json", a.Slug, a.CreatedAt.Format("2006-01-02"))
}

// TrackTitle prefers the prompt title, then the generated name, then "Track N".
func (a *Album) TrackTitle(i int) string {
	if i >= 0 && i < len(a.Prompts) && a.Prompts[i].Title != "" {
		return a.Prompts[i].Title
	}
	if i >= 0 && i < len(a.TrackNames) && a.TrackNames[i] != "" {
		return a.TrackNames[i]
	}
	return fmt.Sprintf("Track %d", i+1)
}

// Store is the part of the storage client an album needs.
type Store interface {
	SaveAlbum(key string, body io.ReadSeeker) error
	Location(key string) string
}

// Save writes the indented summary and returns where it landed.
func (a *Album) Save(store Store) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("album: encode: %w", err)
	}
	key := a.FileName()
	if err := store.SaveAlbum(key, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("album: save %s: %w", key, err)
	}
	return store.Location(key), nil
}

// Load reads a summary from disk.
func Load(path string) (*Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("album: %w", err)
	}
	return Decode(data)
}

// Source is the read side of the storage client.
type Source interface {
	LoadAlbum(key string) ([]byte, error)
}

// Open reads ref from disk when such a file exists, otherwise as a key in the
// albums bucket of src.
func Open(ref string, src Source) (*Album, error) {
	if _, err := os.Stat(ref); err == nil || src == nil {
		return Load(ref)
	}
	data, err := src.LoadAlbum(ref)
	if err != nil {
		return nil, fmt.Errorf("album: %s is neither a local file nor a stored summary: %w", ref, err)
	}
	return Decode(data)
}

func Decode(data []byte) (*Album, error) {
	var a Album
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("album: decode: %w", err)
	}
	if len(a.Arc) != a.TotalTracks {
		return nil, fmt.Errorf("album: %q lists %d tracks but carries an arc of %d", a.Name, a.TotalTracks, len(a.Arc))
	}
	if a.Slug == "" {
		a.Slug = utils.Slugify(a.Name, "album")
	}
	return &a, nil
}
