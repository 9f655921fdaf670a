package prompt

import (
	"fmt"
	"strings"
)

const ruleWidth = 70

// Render produces the copy-paste block printed after generation.
func Render(prompts []Prompt) string {
	heavy := strings.Repeat("═", ruleWidth)
	light := strings.Repeat("─", ruleWidth)

	var b strings.Builder
	b.WriteString("\n" + heavy + "\n")
	b.WriteString("  SUNO V5 PROMPTS - COPY & PASTE INTO SUNO\n")
	b.WriteString(heavy + "\n\n")

	for i, p := range prompts {
		fmt.Fprintf(&b, "━━━ TRACK %d/%d: %s ━━━\n\n", p.TrackNumber, len(prompts), p.Title)
		b.WriteString("📋 COPY THIS PROMPT:\n")
		b.WriteString(light + "\n" + p.Text + "\n" + light + "\n\n")

		b.WriteString("⚙️  SUNO V5 SETTINGS:\n")
		fmt.Fprintf(&b, "   • Title: %s\n", p.Title)
		fmt.Fprintf(&b, "   • Duration: %s (target)\n", p.Duration)
		fmt.Fprintf(&b, "   • Style Tags: %s\n", p.Style)
		b.WriteString("   • Instrumental: ✅ YES\n")
		b.WriteString("   • Vocals: ❌ NO\n")
		fmt.Fprintf(&b, "   • Exclude Styles: %s\n", p.ExcludeStyles)
		fmt.Fprintf(&b, "   • Weirdness: %d/100 (keep low for focus)\n", p.Weirdness)
		fmt.Fprintf(&b, "   • Style Influence: %d/100 (medium-high)\n\n", p.StyleInfluence)

		b.WriteString("🎵 TECHNICAL INFO:\n")
		fmt.Fprintf(&b, "   • Key: %s (%s)\n", p.Key, p.CamelotKey)
		fmt.Fprintf(&b, "   • BPM: %d\n", p.Tempo)
		fmt.Fprintf(&b, "   • Phase: %s\n", strings.ToUpper(p.Metadata.Phase.String()))
		fmt.Fprintf(&b, "   • Energy: %s\n", p.Metadata.Energy)
		if p.Metadata.TransitionFrom != nil {
			fmt.Fprintf(&b, "   • Transition: %s (from %s)\n\n", p.Metadata.Transition, p.Metadata.TransitionFrom)
		} else {
			fmt.Fprintf(&b, "   • Transition: %s\n\n", p.Metadata.Transition)
		}

		b.WriteString("💡 PURPOSE:\n")
		fmt.Fprintf(&b, "   %s\n\n", p.Metadata.Purpose)

		if i < len(prompts)-1 {
			b.WriteString("\n" + heavy + "\n\n")
		}
	}

	b.WriteString("\n" + heavy + "\n")
	b.WriteString("  🚀 NEXT STEPS - CREATING IN SUNO:\n")
	b.WriteString(heavy + "\n")
	for _, line := range nextSteps {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(heavy + "\n")
	b.WriteString("  💡 TIP: Keep Weirdness LOW (5-20) for calm, coherent focus music.\n")
	b.WriteString("       Higher weirdness (70+) adds experimental FX/noise.\n")
	b.WriteString(heavy + "\n\n")

	return b.String()
}

var nextSteps = []string{
	"1. Go to suno.com and click 'Create'",
	"2. Toggle 'Custom' mode ON",
	"3. For each track above:",
	"   • Paste the PROMPT into the Style of Music field",
	"   • Set the Title",
	"   • Add Style Tags from the settings",
	"   • Set Instrumental = YES ✅",
	"   • Set Vocals = NO ❌",
	"   • Paste Exclude Styles text into the Exclude Styles field",
	"   • Set Weirdness slider to the specified value (5-20)",
	"   • Set Style Influence slider to 75",
	"4. Generate and download MP3s (v5 model)",
	"5. Optional: master and retune (`focus master`, `focus convert`)",
	"6. Publish the finished album (`focus publish`)",
}
