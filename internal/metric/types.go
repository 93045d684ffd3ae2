// Package metric defines the data model for one collection run: the
// Snapshot produced by the probes and the small value types it is built
// from. Everything here is created once per run and read-only afterwards;
// the classifier and renderer only consume these values.
package metric

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Placeholder strings for measurements that could not be taken.
const (
	Unknown        = "Unknown"
	UnknownAddress = "Unknown address"
	UnknownUptime  = "Unknown uptime"
	NoInterface    = "none"
)

// Protocol identifies the transport of a monitored or observed socket.
// The set is closed: tcp, tcp6, udp, udp6. Equality and ordering are by
// string value.
type Protocol string

const (
	TCP  Protocol = "tcp"
	TCP6 Protocol = "tcp6"
	UDP  Protocol = "udp"
	UDP6 Protocol = "udp6"
)

// Protocols returns all protocols in their natural (string) order.
func Protocols() []Protocol {
	return []Protocol{TCP, TCP6, UDP, UDP6}
}

// ParseProtocol maps a string to a Protocol. ok is false for anything
// outside the closed set.
func ParseProtocol(s string) (Protocol, bool) {
	switch Protocol(s) {
	case TCP, TCP6, UDP, UDP6:
		return Protocol(s), true
	}
	return "", false
}

// Valid reports whether p is one of the four known protocols.
func (p Protocol) Valid() bool {
	_, ok := ParseProtocol(string(p))
	return ok
}

// Port is a monitored or observed socket endpoint. Two ports are equal
// only when both the number and the protocol match, so (80, tcp) and
// (80, udp) are distinct entries in a set.
type Port struct {
	Number   int
	Protocol Protocol
}

// String renders the port as "number/protocol", e.g. "443/tcp".
func (p Port) String() string {
	return fmt.Sprintf("%d/%s", p.Number, p.Protocol)
}

// less orders ports by number first, then protocol string.
func (p Port) less(other Port) bool {
	if p.Number != other.Number {
		return p.Number < other.Number
	}
	return p.Protocol < other.Protocol
}

// SortPorts returns the keys of a port map in display order.
func SortPorts[V any](m map[Port]V) []Port {
	ports := make([]Port, 0, len(m))
	for p := range m {
		ports = append(ports, p)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].less(ports[j]) })
	return ports
}

// OptInt is an integer measurement that may be absent. Consumers must
// check OK before using Value; String renders absent values as "Unknown".
type OptInt struct {
	Value int
	OK    bool
}

// SomeInt wraps a present integer measurement.
func SomeInt(v int) OptInt { return OptInt{Value: v, OK: true} }

func (o OptInt) String() string {
	if !o.OK {
		return Unknown
	}
	return strconv.Itoa(o.Value)
}

// OptFloat is a floating-point measurement that may be absent.
type OptFloat struct {
	Value float64
	OK    bool
}

// SomeFloat wraps a present floating-point measurement.
func SomeFloat(v float64) OptFloat { return OptFloat{Value: v, OK: true} }

func (o OptFloat) String() string {
	if !o.OK {
		return Unknown
	}
	return strconv.FormatFloat(o.Value, 'f', -1, 64)
}

// DiskUsage is one reported mount point: how full it is and how much
// space is left, as a display string with units.
type DiskUsage struct {
	MountPoint  string
	UsedPercent int
	Available   string
}

// MemInfo holds the memory counters read from the kernel, all in KiB.
// A nil *MemInfo means no memory data was available this run.
type MemInfo struct {
	MemFree      int64
	MemTotal     int64
	SwapFree     int64
	SwapTotal    int64
	Buffers      int64
	Cached       int64
	SReclaimable int64
}

// Snapshot is the complete result of one collection run. Every field is
// either a valid measurement or an explicit absence marker (OptInt/OptFloat
// zero OK, nil MemInfo, or one of the Unknown placeholder strings), never
// uninitialized.
type Snapshot struct {
	Hostname  string
	Timestamp time.Time
	Uptime    string

	Interface string
	IPAddress string

	Load      [3]OptFloat // 1, 5 and 15 minute averages, each independently unknown
	Processes OptInt
	CPUCount  OptInt
	Users     []string // deduplicated, sorted

	Disks  []DiskUsage // sorted by mount point
	Memory *MemInfo

	Ports    map[Port]bool   // monitored port -> observed listening
	Services map[string]bool // monitored service name -> running
}

// SortedServices returns the monitored service names in display order.
func (s *Snapshot) SortedServices() []string {
	names := make([]string, 0, len(s.Services))
	for name := range s.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedPorts returns the monitored ports in display order.
func (s *Snapshot) SortedPorts() []Port {
	return SortPorts(s.Ports)
}
