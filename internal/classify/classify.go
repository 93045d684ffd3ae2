// Package classify maps raw measurements to severity tiers and rolls
// related measurements up into the per-column statuses the renderer
// colors. Everything in here is a pure function of its inputs: the same
// snapshot and thresholds always produce the same severities.
package classify

// Severity is the tier assigned to a classified measurement.
// The ordering matters: rollups take the maximum across a group.
type Severity int

const (
	Normal Severity = iota
	Warning
	Critical
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case Normal:
		return "normal"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Max returns the worse of two severities.
func Max(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

// Classify maps a value and a pair of thresholds to a severity tier.
// Thresholds are inclusive lower bounds: critical iff value >= crit,
// else warning iff value >= warn, else normal.
func Classify(value, warn, crit int) Severity {
	switch {
	case value >= crit:
		return Critical
	case value >= warn:
		return Warning
	default:
		return Normal
	}
}

// UsedPercent computes 100*(total-free)/total with integer division
// semantics (truncation toward zero). The caller must guard total == 0;
// see MemoryStatsFrom for the swap guard.
func UsedPercent(total, free int64) int {
	return int(100 * (total - free) / total)
}

// PercentOf computes 100*part/total with integer division semantics.
// The caller must guard total == 0.
func PercentOf(part, total int64) int {
	return int(100 * part / total)
}

// Reachable partitions the monitored set by membership in the observed
// set: reachable items map to true, unreachable to false. An empty
// monitored set yields an empty map, which rolls up as vacuously ok.
func Reachable[K comparable](monitored, observed map[K]struct{}) map[K]bool {
	checked := make(map[K]bool, len(monitored))
	for item := range monitored {
		_, ok := observed[item]
		checked[item] = ok
	}
	return checked
}
