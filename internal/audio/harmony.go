package audio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// --- HARMONY ENGINE (Camelot System) ---

// Letter is the ring of the wheel a key sits on.
type Letter byte

const (
	Minor Letter = 'A'
	Major Letter = 'B'
)

func (l Letter) Other() Letter {
	if l == Minor {
		return Major
	}
	return Minor
}

type CamelotKey struct {
	Num    int    // 1-12
	Letter Letter // A (Minor) or B (Major)
}

var ErrUnknownKey = errors.New("unknown camelot key")

func (k CamelotKey) String() string {
	return strconv.Itoa(k.Num) + string(k.Letter)
}

func (k CamelotKey) Valid() bool {
	return k.Num >= 1 && k.Num <= 12 && (k.Letter == Minor || k.Letter == Major)
}

func (k CamelotKey) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d%c", ErrUnknownKey, k.Num, k.Letter)
	}
	return []byte(k.String()), nil
}

func (k *CamelotKey) UnmarshalText(b []byte) error {
	parsed, err := ParseCamelot(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseCamelot accepts "8A", "12b", " 3B ".
func ParseCamelot(s string) (CamelotKey, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return CamelotKey{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	num, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return CamelotKey{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	k := CamelotKey{Num: num, Letter: Letter(s[len(s)-1])}
	if !k.Valid() {
		return CamelotKey{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	return k, nil
}

// MustParseCamelot is for literals in tables and tests.
func MustParseCamelot(s string) CamelotKey {
	k, err := ParseCamelot(s)
	if err != nil {
		panic(err)
	}
	return k
}

type wheelPosition struct {
	name       string
	compatible [4]string
}

// wheel is indexed by [Num-1][0 for A, 1 for B]. Never mutated.
var wheel = [12][2]wheelPosition{
	{{"A♭m", [4]string{"1A", "1B", "2A", "12A"}}, {"B", [4]string{"1A", "1B", "2B", "12B"}}},
	{{"E♭m", [4]string{"2A", "2B", "1A", "3A"}}, {"F♯", [4]string{"2A", "2B", "1B", "3B"}}},
	{{"B♭m", [4]string{"3A", "3B", "2A", "4A"}}, {"D♭", [4]string{"3A", "3B", "2B", "4B"}}},
	{{"Fm", [4]string{"4A", "4B", "3A", "5A"}}, {"A♭", [4]string{"4A", "4B", "3B", "5B"}}},
	{{"Cm", [4]string{"5A", "5B", "4A", "6A"}}, {"E♭", [4]string{"5A", "5B", "4B", "6B"}}},
	{{"Gm", [4]string{"6A", "6B", "5A", "7A"}}, {"B♭", [4]string{"6A", "6B", "5B", "7B"}}},
	{{"Dm", [4]string{"7A", "7B", "6A", "8A"}}, {"F", [4]string{"7A", "7B", "6B", "8B"}}},
	{{"Am", [4]string{"8A", "8B", "7A", "9A"}}, {"C", [4]string{"8A", "8B", "7B", "9B"}}},
	{{"Em", [4]string{"9A", "9B", "8A", "10A"}}, {"G", [4]string{"9A", "9B", "8B", "10B"}}},
	{{"Bm", [4]string{"10A", "10B", "9A", "11A"}}, {"D", [4]string{"10A", "10B", "9B", "11B"}}},
	{{"F♯m", [4]string{"11A", "11B", "10A", "12A"}}, {"A", [4]string{"11A", "11B", "10B", "12B"}}},
	{{"C♯m", [4]string{"12A", "12B", "11A", "1A"}}, {"E", [4]string{"12A", "12B", "11B", "1B"}}},
}

func position(k CamelotKey) wheelPosition {
	col := 0
	if k.Letter == Major {
		col = 1
	}
	return wheel[k.Num-1][col]
}

// AllKeys returns the 24 positions in wheel order: 1A, 1B, 2A ... 12B.
func AllKeys() []CamelotKey {
	keys := make([]CamelotKey, 0, 24)
	for n := 1; n <= 12; n++ {
		keys = append(keys, CamelotKey{n, Minor}, CamelotKey{n, Major})
	}
	return keys
}

// MusicalName returns the display key, e.g. 1A -> "A♭m".
func MusicalName(k CamelotKey) string {
	return position(k).name
}

// Compatible returns the fixed four-entry compatibility set of k.
func Compatible(k CamelotKey) []CamelotKey {
	p := position(k)
	out := make([]CamelotKey, len(p.compatible))
	for i, s := range p.compatible {
		out[i] = MustParseCamelot(s)
	}
	return out
}

func IsCompatible(from, to CamelotKey) bool {
	for _, c := range Compatible(from) {
		if c == to {
			return true
		}
	}
	return false
}

// Neighbors lists the smooth moves out of k in planning order:
// stay, relative, next number, previous number.
func Neighbors(k CamelotKey) [4]CamelotKey {
	next := k.Num%12 + 1
	prev := k.Num - 1
	if prev == 0 {
		prev = 12
	}
	return [4]CamelotKey{
		k,
		{k.Num, k.Letter.Other()},
		{next, k.Letter},
		{prev, k.Letter},
	}
}

// EnergyBoostTarget jumps seven steps clockwise on the same ring.
func EnergyBoostTarget(k CamelotKey) CamelotKey {
	return CamelotKey{(k.Num+6)%12 + 1, k.Letter}
}

// EnergyDropTarget moves six steps on the same ring.
func EnergyDropTarget(k CamelotKey) CamelotKey {
	n := k.Num - 6
	if n <= 0 {
		n = k.Num + 6
	}
	return CamelotKey{n, k.Letter}
}

// --- MUSICAL NAME LOOKUP ---

// FromMusicalName maps an analyser key name ("A♭m", "G#m", "C", "F# minor")
// onto the wheel.
func FromMusicalName(name string) (CamelotKey, bool) {
	key, scale := splitMusicalName(name)
	if key == "" {
		return CamelotKey{}, false
	}
	return toCamelot(key, scale)
}

func splitMusicalName(name string) (string, string) {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "♯", "#")
	s = strings.ReplaceAll(s, "♭", "b")

	scale := "major"
	if fields := strings.Fields(s); len(fields) == 2 {
		s = fields[0]
		scale = strings.ToLower(fields[1])
	} else if strings.HasSuffix(s, "m") && len(s) > 1 {
		s = strings.TrimSuffix(s, "m")
		scale = "minor"
	}
	return normalizeKey(s), scale
}

// Analysers disagree on sharps vs flats, so both spellings are listed.
var analyserKeys = map[string]CamelotKey{
	// --- MAJOR KEYS (B) ---
	"B_major":  {1, Major},
	"Cb_major": {1, Major},
	"F#_major": {2, Major},
	"Gb_major": {2, Major},
	"Db_major": {3, Major},
	"C#_major": {3, Major},
	"Ab_major": {4, Major},
	"G#_major": {4, Major},
	"Eb_major": {5, Major},
	"D#_major": {5, Major},
	"Bb_major": {6, Major},
	"A#_major": {6, Major},
	"F_major":  {7, Major},
	"C_major":  {8, Major},
	"G_major":  {9, Major},
	"D_major":  {10, Major},
	"A_major":  {11, Major},
	"E_major":  {12, Major},

	// --- MINOR KEYS (A) ---
	"Ab_minor": {1, Minor},
	"G#_minor": {1, Minor},
	"Eb_minor": {2, Minor},
	"D#_minor": {2, Minor},
	"Bb_minor": {3, Minor},
	"A#_minor": {3, Minor},
	"F_minor":  {4, Minor},
	"C_minor":  {5, Minor},
	"G_minor":  {6, Minor},
	"D_minor":  {7, Minor},
	"A_minor":  {8, Minor},
	"E_minor":  {9, Minor},
	"B_minor":  {10, Minor},
	"F#_minor": {11, Minor},
	"Gb_minor": {11, Minor},
	"Db_minor": {12, Minor},
	"C#_minor": {12, Minor},
}

func toCamelot(keyRaw, scaleRaw string) (CamelotKey, bool) {
	key := normalizeKey(keyRaw)
	scale := strings.ToLower(strings.TrimSpace(scaleRaw))

	// Create lookup string: "Ab_major"
	lookupKey := key + "_" + scale

	val, exists := analyserKeys[lookupKey]
	return val, exists
}

func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if len(k) > 0 {
		// "ab" -> "Ab", "AB" -> "Ab"
		return strings.ToUpper(k[:1]) + strings.ToLower(k[1:])
	}
	return k
}
