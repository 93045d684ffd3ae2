package probe

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mhalley/motdstats/internal/metric"
)

// defaultRouteDestination is the all-zero destination field marking the
// default route in the kernel routing table.
const defaultRouteDestination = "00000000"

// pseudoFilesystems are fstab device names that never correspond to a
// real mount worth reporting.
var pseudoFilesystems = map[string]struct{}{
	"debugfs": {},
	"devpts":  {},
	"proc":    {},
	"sysfs":   {},
	"tmpfs":   {},
}

// parseDefaultInterface scans /proc/net/route content for the entry whose
// destination is the default route and returns its interface name.
func parseDefaultInterface(routes string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(routes))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[1] == defaultRouteDestination {
			return fields[0], true
		}
	}
	return "", false
}

// parseRouteSource extracts the source address from `ip route list dev X`
// output: the word following the first "src" token.
func parseRouteSource(output string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		for i, word := range fields {
			if word == "src" && i+1 < len(fields) {
				return fields[i+1], true
			}
		}
	}
	return "", false
}

// parseMountPoints extracts the real mount points from /etc/fstab
// content. Comment lines are skipped, as are rows whose device is a
// pseudo-filesystem or whose type is swap.
func parseMountPoints(fstab string) map[string]struct{} {
	mounts := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(fstab))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if _, pseudo := pseudoFilesystems[fields[0]]; pseudo {
			continue
		}
		if fields[2] == "swap" {
			continue
		}
		mounts[fields[1]] = struct{}{}
	}
	return mounts
}

// parseMemInfo extracts the seven memory counters from /proc/meminfo
// content, in KiB. Returns nil when none of the expected keys appear, so
// downstream code treats the result as "no memory data" rather than a
// partial reading.
func parseMemInfo(content string) *metric.MemInfo {
	info := &metric.MemInfo{}
	found := 0

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		val, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "MemFree":
			info.MemFree = val
		case "MemTotal":
			info.MemTotal = val
		case "SwapFree":
			info.SwapFree = val
		case "SwapTotal":
			info.SwapTotal = val
		case "Buffers":
			info.Buffers = val
		case "Cached":
			info.Cached = val
		case "SReclaimable":
			info.SReclaimable = val
		default:
			continue
		}
		found++
	}

	if found == 0 {
		return nil
	}
	return info
}

// countProcessorEntries counts "processor" tokens at the start of
// /proc/cpuinfo lines, one per logical CPU.
func countProcessorEntries(cpuinfo string) int {
	count := 0
	scanner := bufio.NewScanner(strings.NewReader(cpuinfo))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && fields[0] == "processor" {
			count++
		}
	}
	return count
}

// CompactBytes renders a byte count the way `df -h` prints sizes:
// 1024-based units with a single-letter suffix and no space ("20G",
// "1.5G", "1023M"). Never longer than five characters, so the value
// fits the disk column's available field.
func CompactBytes(n uint64) string {
	s := strings.ReplaceAll(humanize.IBytes(n), " ", "")
	return strings.TrimSuffix(s, "iB")
}

// ceilPercent rounds a percentage up to the next integer, matching how
// df reports use%.
func ceilPercent(pct float64) int {
	return int(math.Ceil(pct))
}

// formatUptime renders an uptime in seconds the way `uptime -p` does:
// "up 2 weeks, 3 days, 4 hours, 5 minutes", omitting zero units and
// showing "up 0 minutes" for a fresh boot.
func formatUptime(seconds uint64) string {
	minutes := seconds / 60

	weeks := minutes / (7 * 24 * 60)
	minutes -= weeks * 7 * 24 * 60
	days := minutes / (24 * 60)
	minutes -= days * 24 * 60
	hours := minutes / 60
	minutes -= hours * 60

	var parts []string
	appendUnit := func(n uint64, singular string) {
		if n == 0 {
			return
		}
		unit := singular
		if n > 1 {
			unit += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, unit))
	}

	appendUnit(weeks, "week")
	appendUnit(days, "day")
	appendUnit(hours, "hour")
	appendUnit(minutes, "minute")

	if len(parts) == 0 {
		parts = append(parts, "0 minutes")
	}
	return "up " + strings.Join(parts, ", ")
}
