// Package render formats a classified snapshot as the three-column
// dashboard printed at login: disk, memory and services/ports columns
// under a host summary header. It only reads the snapshot and the
// classifier outputs; all decision logic lives upstream.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mhalley/motdstats/internal/classify"
	"github.com/mhalley/motdstats/internal/config"
	"github.com/mhalley/motdstats/internal/metric"
	"github.com/mhalley/motdstats/internal/ui"
)

// Options controls presentation only.
type Options struct {
	// ColWidth is the final width of each column (already negotiated
	// against the terminal by the caller).
	ColWidth int
	// MaxRows caps the number of column rows printed.
	MaxRows int
	// NoColor disables all styling.
	NoColor bool
	// Version is shown in the footer.
	Version string
}

// styles holds the lipgloss styles for one render.
type styles struct {
	plain    bool
	normal   lipgloss.Style
	warning  lipgloss.Style
	critical lipgloss.Style
	heading  lipgloss.Style
	bold     lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{plain: true, normal: plain, warning: plain, critical: plain, heading: plain, bold: plain}
	}
	return styles{
		normal:   lipgloss.NewStyle().Foreground(ui.ColorNormal),
		warning:  lipgloss.NewStyle().Foreground(ui.ColorWarning),
		critical: lipgloss.NewStyle().Foreground(ui.ColorCritical),
		heading:  lipgloss.NewStyle().Foreground(ui.ColorHeading).Bold(true),
		bold:     lipgloss.NewStyle().Bold(true),
	}
}

// severity returns the style for a severity tier.
func (s styles) severity(sev classify.Severity) lipgloss.Style {
	switch sev {
	case classify.Critical:
		return s.critical
	case classify.Warning:
		return s.warning
	default:
		return s.normal
	}
}

// ok maps a boolean liveness result onto the normal/critical styles.
func (s styles) ok(up bool) lipgloss.Style {
	if up {
		return s.normal
	}
	return s.critical
}

// embolden adds bold to a style unless styling is disabled.
func (s styles) embolden(style lipgloss.Style) lipgloss.Style {
	if s.plain {
		return style
	}
	return style.Bold(true)
}

// cell is one column row: plain text plus the style applied after
// padding, so ANSI escapes never break the alignment.
type cell struct {
	text  string
	style lipgloss.Style
}

func (c cell) render(width int) string {
	text := c.text
	if pad := width - len(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return c.style.Render(text)
}

// Dashboard writes the full dashboard for one classified snapshot.
func Dashboard(w io.Writer, snap *metric.Snapshot, sum classify.Summary, t config.Thresholds, opts Options) {
	st := newStyles(opts.NoColor)
	width := opts.ColWidth

	columns := [3][]cell{
		diskColumn(snap, sum, t, st, width),
		memoryColumn(sum, t, st, width),
		servicesColumn(snap, sum, st, width),
	}

	writeHeader(w, snap, st, width)

	rows := 0
	for _, col := range columns {
		if len(col) > rows {
			rows = len(col)
		}
	}
	if rows > opts.MaxRows {
		rows = opts.MaxRows
	}

	blank := strings.Repeat(" ", width)
	for i := 0; i < rows; i++ {
		var line strings.Builder
		for j, col := range columns {
			if i < len(col) {
				line.WriteString(col[i].render(width))
			} else {
				line.WriteString(blank)
			}
			if j < len(columns)-1 {
				line.WriteString(" | ")
			}
		}
		fmt.Fprintln(w, line.String())
	}

	writeFooter(w, st, width, opts.Version)
}

// writeHeader prints the title line and the host summary block.
func writeHeader(w io.Writer, snap *metric.Snapshot, st styles, width int) {
	title := fmt.Sprintf("System status for %s at %s", snap.Hostname, snap.Timestamp.Format("Mon Jan _2 15:04:05 2006"))
	fmt.Fprintln(w, "\n"+st.heading.Render(centerFill(title, width*3+6, '.')))

	iface := snap.Interface
	if iface == metric.NoInterface {
		iface = metric.Unknown
	}
	fmt.Fprintf(w, "\n\t\tIP: %s/%s\n", snap.IPAddress, iface)
	fmt.Fprintf(w, "\t\t%d user(s), %s processes\n", len(snap.Users), snap.Processes)
	fmt.Fprintf(w, "\t\t%s\n", snap.Uptime)
	fmt.Fprintf(w, "\t\tLoad: %s (1min) / %s (5min) / %s (15min) on %s CPU\n\n",
		snap.Load[0], snap.Load[1], snap.Load[2], snap.CPUCount)
}

// writeFooter prints the program name and version, right-aligned.
func writeFooter(w io.Writer, st styles, width int, version string) {
	footer := "motdstats " + version
	fmt.Fprintln(w, "\n"+st.heading.Render(rightFill(footer, width*3+6, '.')))
}

// diskColumn builds the disk status column: rollup heading, sub-header,
// one classified row per reported mount point.
func diskColumn(snap *metric.Snapshot, sum classify.Summary, t config.Thresholds, st styles, width int) []cell {
	headingStyle := st.embolden(st.severity(sum.DiskStatus))
	col := []cell{
		{text: centerFill("Disk status", width, '.'), style: headingStyle},
		{text: fmt.Sprintf("%-*s free use%%", width-10, "Partition"), style: st.bold},
	}

	for _, d := range snap.Disks {
		col = append(col, cell{
			text:  fmt.Sprintf("%-*s %5s %4d", width-11, d.MountPoint, d.Available, d.UsedPercent),
			style: st.severity(classify.DiskSeverity(d, t)),
		})
	}
	return col
}

// memoryColumn builds the memory status column. Without memory data only
// the headings appear.
func memoryColumn(sum classify.Summary, t config.Thresholds, st styles, width int) []cell {
	headingStyle := st.embolden(st.severity(sum.MemoryStatus))
	col := []cell{
		{text: centerFill("Memory status", width, '.'), style: headingStyle},
		{text: fmt.Sprintf("%-*s MB    %%", width-8, "Memory used"), style: st.bold},
	}

	for _, row := range classify.MemoryRows(sum.Memory, t) {
		col = append(col, cell{
			text:  fmt.Sprintf("%-*s %6s %4s", width-12, row.Title, row.UsedMB, row.Percent),
			style: st.severity(row.Severity),
		})
	}
	return col
}

// servicesColumn builds the services/ports column: monitored services
// first (sorted by name), then monitored ports (sorted by number, then
// protocol).
func servicesColumn(snap *metric.Snapshot, sum classify.Summary, st styles, width int) []cell {
	headingStyle := st.embolden(st.ok(sum.ServicesOK))
	col := []cell{
		{text: centerFill("Services status", width, '.'), style: headingStyle},
		{text: fmt.Sprintf("%-*s status", width-7, "Services/ports"), style: st.bold},
	}

	for _, name := range snap.SortedServices() {
		running := snap.Services[name]
		col = append(col, cell{
			text:  fmt.Sprintf("%-*s %8s", width-9, name, liveness(running, "running")),
			style: st.ok(running),
		})
	}

	for _, port := range snap.SortedPorts() {
		listening := snap.Ports[port]
		col = append(col, cell{
			text:  fmt.Sprintf("%-*s %10s", width-11, port, liveness(listening, "listening")),
			style: st.ok(listening),
		})
	}
	return col
}

// liveness renders the status word for a binary check.
func liveness(up bool, word string) string {
	if up {
		return word
	}
	return "KO"
}

// centerFill centers s in a field of the given width, padding with fill.
// Strings longer than the field are returned unchanged.
func centerFill(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)
}

// rightFill right-aligns s in a field of the given width, padding with fill.
func rightFill(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(fill), width-len(s)) + s
}
