package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"focus-arc/internal/utils"
)

// Tags are the descriptive fields read from a source recording.
type Tags struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
	Year   string `json:"year"`
	Format string `json:"format"`
}

// ReadTags reads embedded ID3, Vorbis or MP4 tags.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("metadata: %s: %w", filepath.Base(path), err)
	}

	t := Tags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Genre:  strings.TrimSpace(m.Genre()),
		Format: string(m.Format()),
	}
	if m.Year() != 0 {
		t.Year = strconv.Itoa(m.Year())
	}
	return t, nil
}

// Inspiration describes a source recording for creative naming. Untagged
// files fall back to their cleaned-up filename.
func (t Tags) Inspiration(path string) string {
	title := t.Title
	if title == "" {
		title = utils.CleanFilename(filepath.Base(path))
	}

	parts := []string{title}
	if t.Artist != "" {
		parts = append(parts, "by "+t.Artist)
	}
	if t.Album != "" {
		parts = append(parts, "from "+t.Album)
	}
	out := strings.Join(parts, " ")
	if t.Genre != "" {
		out += " (" + t.Genre + ")"
	}
	return out
}
