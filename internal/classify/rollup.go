package classify

import (
	"strconv"

	"github.com/mhalley/motdstats/internal/config"
	"github.com/mhalley/motdstats/internal/metric"
)

// swapPlaceholder is shown for the swap row when no swap is configured.
const swapPlaceholder = "---"

// MemoryStats holds the quantities derived from the raw memory counters:
// used amounts in MiB and used percentages, truncated toward zero.
type MemoryStats struct {
	MemUsedMB  int64
	MemPercent int

	// SwapConfigured is false when total swap capacity is zero. The swap
	// fields below are only meaningful when it is true; the renderer shows
	// a placeholder and rollups treat swap as normal otherwise.
	SwapConfigured bool
	SwapUsedMB     int64
	SwapPercent    int

	BuffersMB          int64
	BuffersPercent     int
	CachedMB           int64
	CachedPercent      int
	ReclaimableMB      int64
	ReclaimablePercent int
}

// MemoryStatsFrom derives displayable memory quantities from the raw
// counters. Returns nil when there is no memory data (nil input or a
// zero MemTotal, which would make every percentage undefined).
func MemoryStatsFrom(m *metric.MemInfo) *MemoryStats {
	if m == nil || m.MemTotal == 0 {
		return nil
	}

	s := &MemoryStats{
		MemUsedMB:          (m.MemTotal - m.MemFree) / 1024,
		MemPercent:         UsedPercent(m.MemTotal, m.MemFree),
		BuffersMB:          m.Buffers / 1024,
		BuffersPercent:     PercentOf(m.Buffers, m.MemTotal),
		CachedMB:           m.Cached / 1024,
		CachedPercent:      PercentOf(m.Cached, m.MemTotal),
		ReclaimableMB:      m.SReclaimable / 1024,
		ReclaimablePercent: PercentOf(m.SReclaimable, m.MemTotal),
	}

	if m.SwapTotal > 0 {
		s.SwapConfigured = true
		s.SwapUsedMB = (m.SwapTotal - m.SwapFree) / 1024
		s.SwapPercent = UsedPercent(m.SwapTotal, m.SwapFree)
	}

	return s
}

// MemoryRow is one classified line of the memory column.
type MemoryRow struct {
	Title    string
	UsedMB   string
	Percent  string
	Severity Severity
}

// MemoryRows classifies each derived memory quantity against the
// configured thresholds. Swap uses its own threshold pair; buffers,
// cached and reclaimable use the memory thresholds. When no swap is
// configured the swap row carries placeholders and normal severity.
func MemoryRows(s *MemoryStats, t config.Thresholds) []MemoryRow {
	if s == nil {
		return nil
	}

	swap := MemoryRow{Title: "Swap", UsedMB: swapPlaceholder, Percent: swapPlaceholder, Severity: Normal}
	if s.SwapConfigured {
		swap.UsedMB = strconv.FormatInt(s.SwapUsedMB, 10)
		swap.Percent = strconv.Itoa(s.SwapPercent)
		swap.Severity = Classify(s.SwapPercent, t.SwapWarning, t.SwapCritical)
	}

	return []MemoryRow{
		{
			Title:    "Memory",
			UsedMB:   strconv.FormatInt(s.MemUsedMB, 10),
			Percent:  strconv.Itoa(s.MemPercent),
			Severity: Classify(s.MemPercent, t.MemWarning, t.MemCritical),
		},
		swap,
		{
			Title:    "Buffers",
			UsedMB:   strconv.FormatInt(s.BuffersMB, 10),
			Percent:  strconv.Itoa(s.BuffersPercent),
			Severity: Classify(s.BuffersPercent, t.MemWarning, t.MemCritical),
		},
		{
			Title:    "Cached",
			UsedMB:   strconv.FormatInt(s.CachedMB, 10),
			Percent:  strconv.Itoa(s.CachedPercent),
			Severity: Classify(s.CachedPercent, t.MemWarning, t.MemCritical),
		},
		{
			Title:    "Reclaimable",
			UsedMB:   strconv.FormatInt(s.ReclaimableMB, 10),
			Percent:  strconv.Itoa(s.ReclaimablePercent),
			Severity: Classify(s.ReclaimablePercent, t.MemWarning, t.MemCritical),
		},
	}
}

// DiskSeverity classifies one mount point's used percentage. Available
// space is reported but never classified; only used-percent drives
// severity.
func DiskSeverity(d metric.DiskUsage, t config.Thresholds) Severity {
	return Classify(d.UsedPercent, t.DiskWarning, t.DiskCritical)
}

// DiskRollup is the worst severity across all reported mount points,
// normal when none were reported.
func DiskRollup(disks []metric.DiskUsage, t config.Thresholds) Severity {
	worst := Normal
	for _, d := range disks {
		worst = Max(worst, DiskSeverity(d, t))
	}
	return worst
}

// MemoryRollup is the worst of the memory, swap, buffers and cached
// severities. Reclaimable is displayed but deliberately not part of the
// rollup. A nil MemoryStats (no memory data) rolls up as normal.
func MemoryRollup(s *MemoryStats, t config.Thresholds) Severity {
	if s == nil {
		return Normal
	}

	worst := Classify(s.MemPercent, t.MemWarning, t.MemCritical)
	if s.SwapConfigured {
		worst = Max(worst, Classify(s.SwapPercent, t.SwapWarning, t.SwapCritical))
	}
	worst = Max(worst, Classify(s.BuffersPercent, t.MemWarning, t.MemCritical))
	worst = Max(worst, Classify(s.CachedPercent, t.MemWarning, t.MemCritical))
	return worst
}

// ServicesOK reports whether every monitored port is listening and every
// monitored service is running. Empty monitored sets are vacuously ok.
func ServicesOK(ports map[metric.Port]bool, services map[string]bool) bool {
	for _, listening := range ports {
		if !listening {
			return false
		}
	}
	for _, running := range services {
		if !running {
			return false
		}
	}
	return true
}

// Summary is the per-column rollup the renderer colors at the top of the
// dashboard, together with the derived memory stats it is based on.
type Summary struct {
	Memory       *MemoryStats
	DiskStatus   Severity
	MemoryStatus Severity
	ServicesOK   bool
}

// Summarize ties one snapshot to the classifier outputs: it derives the
// memory quantities and computes the three column rollups. Running it
// twice on the same inputs yields identical results.
func Summarize(snap *metric.Snapshot, t config.Thresholds) Summary {
	stats := MemoryStatsFrom(snap.Memory)
	return Summary{
		Memory:       stats,
		DiskStatus:   DiskRollup(snap.Disks, t),
		MemoryStatus: MemoryRollup(stats, t),
		ServicesOK:   ServicesOK(snap.Ports, snap.Services),
	}
}
