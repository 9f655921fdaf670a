package audio

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var supportedExtensions = []string{
	".mp3", ".flac", ".wav", ".ogg", ".m4a", ".aac", ".wma", ".aiff", ".alac", ".opus",
}

func IsSupportedFormat(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsBatchFormat reports whether batch workflows pick the file up (mp3 and wav only).
func IsBatchFormat(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav":
		return true
	}
	return false
}

// minTrackSize rejects truncated downloads from the generation service.
const minTrackSize = 500 * 1024

// Validate checks if the file is large enough and decodable by ffmpeg
func Validate(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		log.Printf("❌ File system error: %v", err)
		return err
	}

	if info.Size() < minTrackSize {
		log.Printf("⚠️ File too small (%d bytes). Likely a failed download.", info.Size())
		return os.ErrInvalid
	}

	// A truncated stream makes ffprobe exit non-zero when reading the duration
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	if err := cmd.Run(); err != nil {
		log.Printf("❌ Integrity check failed (corrupt stream): %v", err)
		return err
	}

	return nil
}

// transcodeMono writes a 44.1kHz mono WAV copy for analysis tools that choke on
// compressed or multichannel input.
func transcodeMono(ctx context.Context, input, output string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", input, "-ar", "44100", "-ac", "1", "-f", "wav", output)
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("❌ Pre-transcode failed: %v | %s", err, string(out))
		return err
	}
	return nil
}
