// Package probe reads live operating-system state and normalizes it into
// the typed values of the metric package. Each probe reads one facility
// and degrades to an explicit absence marker when that facility is
// missing or unreadable; no probe ever aborts a run.
package probe

import (
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/mhalley/motdstats/internal/metric"
)

// Kernel interfaces read directly. Everything else goes through gopsutil
// or an external tool.
const (
	procRoutePath   = "/proc/net/route"
	procMeminfoPath = "/proc/meminfo"
	procCPUInfoPath = "/proc/cpuinfo"
	fstabPath       = "/etc/fstab"
)

// Hostname returns the host name, or the Unknown marker.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return metric.Unknown
	}
	return name
}

// Uptime returns the time since boot formatted like `uptime -p`, or the
// UnknownUptime marker.
func Uptime() string {
	seconds, err := host.Uptime()
	if err != nil {
		return metric.UnknownUptime
	}
	return formatUptime(seconds)
}

// DefaultInterface returns the name of the interface carrying the default
// route, or "none" when the routing table is unreadable or has no default
// entry.
func DefaultInterface() string {
	data, err := os.ReadFile(procRoutePath)
	if err != nil {
		return metric.NoInterface
	}
	iface, ok := parseDefaultInterface(string(data))
	if !ok {
		return metric.NoInterface
	}
	return iface
}

// IPAddress looks up the source address of the first route on the given
// interface. An interface of "none" or any lookup failure yields the
// UnknownAddress marker.
func IPAddress(iface string) string {
	if iface == metric.NoInterface {
		return metric.UnknownAddress
	}
	out, err := exec.Command("ip", "route", "list", "dev", iface).Output()
	if err != nil {
		return metric.UnknownAddress
	}
	addr, ok := parseRouteSource(string(out))
	if !ok {
		return metric.UnknownAddress
	}
	return addr
}

// LoadAverages returns the 1, 5 and 15 minute load averages. When the
// load interface is unavailable all three are independently unknown.
func LoadAverages() [3]metric.OptFloat {
	avg, err := load.Avg()
	if err != nil || avg == nil {
		return [3]metric.OptFloat{}
	}
	return [3]metric.OptFloat{
		metric.SomeFloat(avg.Load1),
		metric.SomeFloat(avg.Load5),
		metric.SomeFloat(avg.Load15),
	}
}

// ProcessCount counts the process identifiers currently known to the
// kernel.
func ProcessCount() metric.OptInt {
	pids, err := process.Pids()
	if err != nil {
		return metric.OptInt{}
	}
	return metric.SomeInt(len(pids))
}

// Users returns the names of logged-in users as a sorted, deduplicated
// set. The same user logged in on two terminals counts once.
func Users() []string {
	stats, err := host.Users()
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{}, len(stats))
	for _, u := range stats {
		if u.User != "" {
			seen[u.User] = struct{}{}
		}
	}
	users := make([]string, 0, len(seen))
	for name := range seen {
		users = append(users, name)
	}
	sort.Strings(users)
	return users
}

// MountPoints returns the real mount points declared in the static
// filesystem table, excluding pseudo-filesystems and swap entries.
func MountPoints() map[string]struct{} {
	data, err := os.ReadFile(fstabPath)
	if err != nil {
		return map[string]struct{}{}
	}
	return parseMountPoints(string(data))
}

// DiskUsage reports used percentage and available space for each mount
// point in mounts that is not excluded. Used percent rounds up and the
// available string is df-style compact, both matching what df reports.
// Mounts that cannot be statted are omitted. Results are sorted by mount
// point.
func DiskUsage(mounts, excluded map[string]struct{}) []metric.DiskUsage {
	disks := make([]metric.DiskUsage, 0, len(mounts))
	for mount := range mounts {
		if _, skip := excluded[mount]; skip {
			continue
		}
		usage, err := disk.Usage(mount)
		if err != nil || usage == nil {
			continue
		}
		disks = append(disks, metric.DiskUsage{
			MountPoint:  mount,
			UsedPercent: ceilPercent(usage.UsedPercent),
			Available:   CompactBytes(usage.Free),
		})
	}
	sort.Slice(disks, func(i, j int) bool { return disks[i].MountPoint < disks[j].MountPoint })
	return disks
}

// MemInfo reads the kernel memory counters. Returns nil when the
// interface is unreadable, so callers see "no memory data" rather than a
// zeroed reading.
func MemInfo() *metric.MemInfo {
	data, err := os.ReadFile(procMeminfoPath)
	if err != nil {
		return nil
	}
	return parseMemInfo(string(data))
}

// ListeningPorts returns the set of (port, protocol) pairs with a
// listening socket. TCP sockets count only in LISTEN state; UDP sockets
// always count. Duplicates collapse by set semantics.
func ListeningPorts() map[metric.Port]struct{} {
	conns, err := gopsnet.Connections("inet")
	if err != nil {
		return map[metric.Port]struct{}{}
	}

	ports := make(map[metric.Port]struct{})
	for _, c := range conns {
		proto, ok := connectionProtocol(c.Type, c.Family)
		if !ok {
			continue
		}
		if (proto == metric.TCP || proto == metric.TCP6) && !strings.HasPrefix(c.Status, "LISTEN") {
			continue
		}
		ports[metric.Port{Number: int(c.Laddr.Port), Protocol: proto}] = struct{}{}
	}
	return ports
}

// connectionProtocol maps a socket type and address family onto the
// closed protocol set.
func connectionProtocol(sockType, family uint32) (metric.Protocol, bool) {
	switch {
	case sockType == syscall.SOCK_STREAM && family == syscall.AF_INET:
		return metric.TCP, true
	case sockType == syscall.SOCK_STREAM && family == syscall.AF_INET6:
		return metric.TCP6, true
	case sockType == syscall.SOCK_DGRAM && family == syscall.AF_INET:
		return metric.UDP, true
	case sockType == syscall.SOCK_DGRAM && family == syscall.AF_INET6:
		return metric.UDP6, true
	}
	return "", false
}

// ServiceRunning reports whether at least one process has exactly the
// given name. Enumeration failures count as not running; only presence
// matters, not the match count.
func ServiceRunning(name string) bool {
	procs, err := process.Processes()
	if err != nil {
		return false
	}
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if pname == name {
			return true
		}
	}
	return false
}

// CPUCount returns the number of logical processors, falling back to
// counting processor entries in the kernel CPU table. Unknown when both
// sources are unavailable.
func CPUCount() metric.OptInt {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return metric.SomeInt(n)
	}
	data, err := os.ReadFile(procCPUInfoPath)
	if err != nil {
		return metric.OptInt{}
	}
	return metric.SomeInt(countProcessorEntries(string(data)))
}
