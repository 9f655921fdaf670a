package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// BaseFrequency is concert pitch, the tuning generated audio is assumed to use.
const BaseFrequency = 440

const conversionSampleRate = 44100

var ErrUnsupportedFrequency = errors.New("unsupported frequency")

// SacredFrequency is one of the retuning targets offered by the convert command.
type SacredFrequency int

type frequencyInfo struct {
	name    string
	purpose string
}

var frequencyTable = map[SacredFrequency]frequencyInfo{
	432:  {"Natural Tuning", "Grounding, earth connection, harmony"},
	444:  {"Spiritual Clarity", "Higher consciousness, divine connection"},
	528:  {"Love Frequency", "DNA repair, transformation, miracles"},
	639:  {"Connection", "Relationships, communication, harmony"},
	741:  {"Awakening", "Intuition, problem-solving, expression"},
	852:  {"Intuition", "Spiritual awakening, inner strength"},
	963:  {"Divine Connection", "Pineal gland activation, unity"},
	1111: {"Manifestation", "Alignment, angel numbers, spiritual awakening"},
}

var frequencyOrder = []SacredFrequency{432, 444, 528, 639, 741, 852, 963, 1111}

// Frequencies lists the supported targets in ascending order.
func Frequencies() []SacredFrequency {
	out := make([]SacredFrequency, len(frequencyOrder))
	copy(out, frequencyOrder)
	return out
}

func (f SacredFrequency) Valid() bool {
	_, ok := frequencyTable[f]
	return ok
}

func (f SacredFrequency) Name() string    { return frequencyTable[f].name }
func (f SacredFrequency) Purpose() string { return frequencyTable[f].purpose }

func (f SacredFrequency) String() string {
	return strconv.Itoa(int(f)) + "Hz"
}

// ParseFrequency accepts "432", "432hz" or "432Hz".
func ParseFrequency(s string) (SacredFrequency, error) {
	trimmed := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "hz")
	n, err := strconv.Atoi(trimmed)
	if err != nil || !SacredFrequency(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, s)
	}
	return SacredFrequency(n), nil
}

// ConvertArgs builds the ffmpeg invocation that shifts pitch from base to target
// while restoring the original playback speed.
func ConvertArgs(input, output string, target SacredFrequency, base int) []string {
	if base <= 0 {
		base = BaseFrequency
	}
	ratio := strconv.FormatFloat(float64(target)/float64(base), 'f', -1, 64)
	filter := fmt.Sprintf("asetrate=%d*%s,aresample=%d,%s",
		conversionSampleRate, ratio, conversionSampleRate, strings.Join(atempoChain(base, int(target)), ","))

	return []string{"-i", input, "-af", filter, "-y", output}
}

// atempo rejects factors outside [0.5, 2] on older ffmpeg builds, so a
// slowdown of num/den is split into halving or doubling stages plus an
// in-range remainder.
func atempoChain(num, den int) []string {
	var stages []string
	for num*2 < den {
		stages = append(stages, "atempo=0.5")
		num *= 2
	}
	for num > den*2 {
		stages = append(stages, "atempo=2.0")
		den *= 2
	}
	return append(stages, fmt.Sprintf("atempo=%d/%d", num, den))
}

// ConvertFrequency retunes input into output with ffmpeg.
func ConvertFrequency(ctx context.Context, input, output string, target SacredFrequency) error {
	if !target.Valid() {
		return fmt.Errorf("audio: convert: %w: %d", ErrUnsupportedFrequency, int(target))
	}

	log.Printf("🔮 Converting %s to %s (%s)", filepath.Base(input), target, target.Name())

	cmd := exec.CommandContext(ctx, "ffmpeg", ConvertArgs(input, output, target, BaseFrequency)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("audio: ffmpeg convert %s: %w: %s", filepath.Base(input), err, tail(out))
	}
	return nil
}

// tail keeps the last line of tool output for error messages.
func tail(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
