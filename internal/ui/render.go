package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"focus-arc/internal/arc"
	"focus-arc/internal/audio"
)

const wave = "∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿∿"

func Banner(subtitle string) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(wave) + "\n\n")
	b.WriteString(titleStyle.Render("  F O C U S   A R C") + "\n")
	b.WriteString(accentStyle.Render("  ♪  "+subtitle+"  ♪") + "\n")
	b.WriteString(ruleStyle.Render("  "+strings.Repeat("═", 55)) + "\n")
	return b.String()
}

// ArcChart draws one bar per track, one block per 5 BPM.
func ArcChart(tracks []arc.Track) string {
	total, peak := arc.Summary(tracks)

	var b strings.Builder
	header := fmt.Sprintf("FOCUS SESSION ARC (%d-minute journey, peak %d BPM)", total/60, peak)
	b.WriteString(boxStyle.Margin(0).Padding(0, 2).Render(titleStyle.Render(header)) + "\n\n")

	for _, t := range tracks {
		bar := barStyle.Render(strings.Repeat("█", t.TargetBPM/5))
		fmt.Fprintf(&b, "Track %2d  %s  %-4s %3d BPM  %s\n", t.Number, t.Phase.Emoji(), t.TargetKey, t.TargetBPM, bar)
		fmt.Fprintf(&b, "         %-10s %s\n", strings.ToUpper(t.Phase.String()), detailStyle.Render(t.Energy.String()))
		fmt.Fprintf(&b, "         %s\n\n", detailStyle.Render(t.Purpose()))
	}
	return b.String()
}

func AlbumReveal(name string, titles []string) string {
	var b strings.Builder
	b.WriteString(successStyle.Render("🎨  ALBUM CREATED  🎨") + "\n\n")
	b.WriteString(titleStyle.Render(name) + "\n\n")
	b.WriteString(detailStyle.Render(strings.Repeat("━", 40)) + "\n\n")
	for i, title := range titles {
		b.WriteString(accentStyle.Render(fmt.Sprintf("%2d. %s", i+1, title)))
		if i < len(titles)-1 {
			b.WriteString("\n")
		}
	}
	return boxStyle.Render(b.String())
}

func FrequencyList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🎵 Sacred Frequencies") + "\n\n")
	for _, f := range audio.Frequencies() {
		fmt.Fprintf(&b, "%s - %s\n", accentStyle.Render(fmt.Sprintf("%d Hz", int(f))), f.Name())
		fmt.Fprintf(&b, "   %s\n\n", detailStyle.Render(f.Purpose()))
	}
	return b.String()
}

func FrequencyBanner(f audio.SacredFrequency) string {
	body := titleStyle.Render("SACRED FREQUENCY CONVERTER") + "\n\n" +
		accentStyle.Render(fmt.Sprintf("%d Hz - %s", int(f), f.Name()))
	return boxStyle.Border(lipgloss.DoubleBorder()).Render(body)
}

func Outro() string {
	notes := []string{"♪", "♫", "♬", "♩", "♭", "♮", "♯"}
	var b strings.Builder
	b.WriteString(titleStyle.Render(" "+strings.Join(notes, "  ")+" ") + "\n")
	b.WriteString(accentStyle.Render("\n  🎵  Album generation complete!  🎵\n") + "\n")
	b.WriteString(ruleStyle.Render("  "+strings.Repeat("═", 55)) + "\n")
	return b.String()
}
