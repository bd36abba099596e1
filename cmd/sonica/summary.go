package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/noriah/sonica/input"
	"github.com/noriah/sonica/processor"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#7D56F4")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

func printSummary(w io.Writer, cfg *config, samples input.Samples, res *processor.Result) {
	g := res.Global

	rows := []struct {
		key   string
		value string
	}{
		{"file", cfg.Input},
		{"duration", fmt.Sprintf("%.2fs", g.Duration)},
		{"sample rate", fmt.Sprintf("%d Hz", samples.SampleRate)},
		{"frames", fmt.Sprintf("%d at %d fps", len(res.Frames), cfg.FrameRate)},
		{"smoothing", fmt.Sprintf("%.2f", cfg.SmoothingFactor)},
		{"tempo", fmt.Sprintf("%.1f bpm", g.TempoBPM)},
		{"beats", fmt.Sprintf("%d", len(g.BeatTimes))},
		{"peak rms", fmt.Sprintf("%.4f", g.PeakRMS)},
		{"peak level", fmt.Sprintf("%.4f", g.PeakAmplitude)},
	}

	fmt.Fprintln(w, titleStyle.Render(AppName+" analysis"))

	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render(row.key), valueStyle.Render(row.value))
	}

	fmt.Fprintln(w)
}
