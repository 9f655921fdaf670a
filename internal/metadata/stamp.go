package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/go-flac/go-flac"

	"focus-arc/internal/arc"
)

const vendor = "focus-arc"

// ArcTags are the Vorbis-style fields written onto a finished album track.
func ArcTags(t arc.Track, title, album string, total int) map[string]string {
	return map[string]string{
		"TITLE":       title,
		"ALBUM":       album,
		"GENRE":       "Focus",
		"TRACKNUMBER": fmt.Sprintf("%d/%d", t.Number, total),
		"BPM":         strconv.Itoa(t.TargetBPM),
		"KEY":         t.MusicalKey,
		"COMMENT":     fmt.Sprintf("%s %s, %s, %s", t.TargetKey, t.Phase.Emoji(), t.Phase, t.Purpose()),
	}
}

// Stamp picks the tag writer by extension.
func Stamp(path string, tags map[string]string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return StampMP3(path, tags)
	case ".flac":
		return StampFLAC(path, tags)
	default:
		return fmt.Errorf("metadata: cannot tag %s", filepath.Base(path))
	}
}

func StampMP3(path string, tags map[string]string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetTitle(tags["TITLE"])
	tag.SetAlbum(tags["ALBUM"])
	tag.SetGenre(tags["GENRE"])
	if v := tags["ARTIST"]; v != "" {
		tag.SetArtist(v)
	}

	enc := tag.DefaultEncoding()
	if v := tags["TRACKNUMBER"]; v != "" {
		tag.AddTextFrame("TRCK", enc, v)
	}
	if v := tags["BPM"]; v != "" {
		tag.AddTextFrame("TBPM", enc, v)
	}
	if v := tags["KEY"]; v != "" {
		tag.AddTextFrame("TKEY", enc, v)
	}
	if v := tags["COMMENT"]; v != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    enc,
			Language:    "eng",
			Description: "arc",
			Text:        v,
		})
	}

	return tag.Save()
}

// StampFLAC replaces the Vorbis Comment block; go-flac leaves the encoding to us.
func StampFLAC(path string, tags map[string]string) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return err
	}

	var meta []*flac.MetaDataBlock
	for _, m := range f.Meta {
		if m.Type != flac.VorbisComment {
			meta = append(meta, m)
		}
	}

	f.Meta = append(meta, &flac.MetaDataBlock{
		Type: flac.VorbisComment,
		Data: vorbisComment(tags),
	})

	return f.Save(path)
}

// vorbisComment encodes [vendor len][vendor][count]([len][KEY=VALUE])...
// all little-endian, skipping empty values.
func vorbisComment(tags map[string]string) []byte {
	keys := make([]string, 0, len(tags))
	for k, v := range tags {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(&buf, binary.LittleEndian, uint32(len(keys)))
	for _, k := range keys {
		comment := k + "=" + tags[k]
		binary.Write(&buf, binary.LittleEndian, uint32(len(comment)))
		buf.WriteString(comment)
	}
	return buf.Bytes()
}
