package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mhalley/motdstats/internal/classify"
	"github.com/mhalley/motdstats/internal/config"
	"github.com/mhalley/motdstats/internal/probe"
	"github.com/mhalley/motdstats/internal/render"
	"github.com/mhalley/motdstats/internal/ui"
)

// showCommand is the main path: load settings, collect one snapshot,
// classify it and print the dashboard.
func showCommand(w io.Writer) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	snap := probe.NewCollector(cfg).Collect()
	sum := classify.Summarize(snap, cfg.Thresholds)

	noColor := noColorFlag || termenv.EnvNoColor()
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		// Colors are wanted even when output is redirected into the motd
		// file, so force the ANSI profile instead of letting lipgloss
		// downgrade on a non-terminal.
		lipgloss.SetColorProfile(termenv.ANSI)
	}

	colWidth := widthFlag
	if colWidth <= 0 {
		colWidth = ui.ColumnWidth(ui.TerminalWidth(), cfg.Display.ColWidth)
	}

	render.Dashboard(w, snap, sum, cfg.Thresholds, render.Options{
		ColWidth: colWidth,
		MaxRows:  cfg.Display.MaxRows,
		NoColor:  noColor,
		Version:  version,
	})
	return nil
}
