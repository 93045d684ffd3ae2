// Package config loads and validates the motdstats settings file.
//
// The file is INI-style with four groups of settings: display options,
// severity thresholds, monitored sets (ports per protocol, service names)
// and excluded mount points. The loaded Config is an immutable value
// constructed once at startup and passed into the probes, classifier and
// renderer; nothing reads settings ambiently.
package config

import (
	"sort"

	"github.com/mhalley/motdstats/internal/metric"
)

// DefaultPath is the default file location, overridable with --config.
const DefaultPath = "/etc/motdstats.ini"

// Default values used when a setting is absent or unparsable.
const (
	DefaultDiskWarning  = 80
	DefaultDiskCritical = 90
	DefaultMemWarning   = 80
	DefaultMemCritical  = 90
	DefaultSwapWarning  = 10
	DefaultSwapCritical = 20
	DefaultMaxRows      = 15
	DefaultColWidth     = 32
)

// Thresholds are inclusive lower bounds, in percent, for the warning and
// critical tiers of each measurement category.
//
// Warning < critical is a documented expectation, not an enforced rule: a
// file that sets warning above critical is accepted as-is and simply never
// reports the warning tier. See Normalize.
type Thresholds struct {
	DiskWarning  int
	DiskCritical int
	MemWarning   int
	MemCritical  int
	SwapWarning  int
	SwapCritical int
}

// Display holds presentation limits consumed by the renderer.
type Display struct {
	MaxRows  int
	ColWidth int
}

// Config is the complete typed settings structure.
type Config struct {
	Thresholds Thresholds
	Display    Display

	// MonitoredPorts maps each (port, protocol) pair the operator wants
	// liveness-checked. The protocol is part of the identity.
	MonitoredPorts map[metric.Port]struct{}

	// MonitoredServices is the set of process names checked for liveness.
	MonitoredServices map[string]struct{}

	// ExcludedMounts is the set of mount points omitted from disk reporting.
	ExcludedMounts map[string]struct{}
}

// Default returns a Config populated with the documented defaults and
// empty monitored sets.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			DiskWarning:  DefaultDiskWarning,
			DiskCritical: DefaultDiskCritical,
			MemWarning:   DefaultMemWarning,
			MemCritical:  DefaultMemCritical,
			SwapWarning:  DefaultSwapWarning,
			SwapCritical: DefaultSwapCritical,
		},
		Display: Display{
			MaxRows:  DefaultMaxRows,
			ColWidth: DefaultColWidth,
		},
		MonitoredPorts:    make(map[metric.Port]struct{}),
		MonitoredServices: make(map[string]struct{}),
		ExcludedMounts:    make(map[string]struct{}),
	}
}

// SortedServices returns the monitored service names in stable order.
func (c *Config) SortedServices() []string {
	names := make([]string, 0, len(c.MonitoredServices))
	for name := range c.MonitoredServices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedPorts returns the monitored ports in stable order.
func (c *Config) SortedPorts() []metric.Port {
	return metric.SortPorts(c.MonitoredPorts)
}
