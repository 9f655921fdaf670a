// Package ui renders the CLI's banners, charts and status lines.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D50BB")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6EC7"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#667EEA"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FDBFF"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#B490FF")).
			Padding(1, 2).
			Margin(1, 1)
)

// Out receives regular output; Err receives failures and progress spinners.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

func Info(format string, args ...any) {
	fmt.Fprintln(Out, infoStyle.Render("ℹ️  "+fmt.Sprintf(format, args...)))
}

func Success(format string, args ...any) {
	fmt.Fprintln(Out, successStyle.Render("✅ "+fmt.Sprintf(format, args...)))
}

func Warn(format string, args ...any) {
	fmt.Fprintln(Out, warnStyle.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

func Fail(format string, args ...any) {
	fmt.Fprintln(Err, failStyle.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Print writes pre-rendered blocks such as charts.
func Print(s string) {
	fmt.Fprintln(Out, s)
}
