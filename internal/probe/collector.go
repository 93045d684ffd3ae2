package probe

import (
	"time"

	"github.com/mhalley/motdstats/internal/classify"
	"github.com/mhalley/motdstats/internal/config"
	"github.com/mhalley/motdstats/internal/logger"
	"github.com/mhalley/motdstats/internal/metric"
)

// Probes bundles the individual probe functions the collector invokes,
// so tests can substitute canned readings for live OS state.
type Probes struct {
	Hostname         func() string
	Uptime           func() string
	DefaultInterface func() string
	IPAddress        func(iface string) string
	LoadAverages     func() [3]metric.OptFloat
	ProcessCount     func() metric.OptInt
	Users            func() []string
	MountPoints      func() map[string]struct{}
	DiskUsage        func(mounts, excluded map[string]struct{}) []metric.DiskUsage
	MemInfo          func() *metric.MemInfo
	ListeningPorts   func() map[metric.Port]struct{}
	ServiceRunning   func(name string) bool
	CPUCount         func() metric.OptInt
}

// defaultProbes wires the live probes of this package.
func defaultProbes() Probes {
	return Probes{
		Hostname:         Hostname,
		Uptime:           Uptime,
		DefaultInterface: DefaultInterface,
		IPAddress:        IPAddress,
		LoadAverages:     LoadAverages,
		ProcessCount:     ProcessCount,
		Users:            Users,
		MountPoints:      MountPoints,
		DiskUsage:        DiskUsage,
		MemInfo:          MemInfo,
		ListeningPorts:   ListeningPorts,
		ServiceRunning:   ServiceRunning,
		CPUCount:         CPUCount,
	}
}

// Collector runs all probes sequentially and assembles one Snapshot per
// run. Probes run one after another, each performing at most one blocking
// call; a failing probe degrades its own field and never stops the run.
type Collector struct {
	cfg    *config.Config
	probes Probes
	log    logger.Logger
}

// NewCollector creates a collector for the given configuration.
func NewCollector(cfg *config.Config) *Collector {
	return &Collector{
		cfg:    cfg,
		probes: defaultProbes(),
		log:    logger.NewEnvLogger("[probe]"),
	}
}

// SetLogger replaces the collector's logger.
func (c *Collector) SetLogger(log logger.Logger) {
	c.log = log
}

// Collect builds a complete Snapshot from live OS state. Every field of
// the result is populated, with a measurement or an explicit absence
// marker, regardless of how many probes failed.
func (c *Collector) Collect() *metric.Snapshot {
	snap := &metric.Snapshot{
		Timestamp: time.Now(),
	}

	snap.Hostname = c.probes.Hostname()
	snap.Uptime = c.probes.Uptime()

	snap.Interface = c.probes.DefaultInterface()
	snap.IPAddress = c.probes.IPAddress(snap.Interface)

	snap.Load = c.probes.LoadAverages()
	snap.Processes = c.probes.ProcessCount()
	snap.CPUCount = c.probes.CPUCount()
	snap.Users = c.probes.Users()

	mounts := c.probes.MountPoints()
	snap.Disks = c.probes.DiskUsage(mounts, c.cfg.ExcludedMounts)
	c.log.Debug("probed %d mount points, reporting %d", len(mounts), len(snap.Disks))

	snap.Memory = c.probes.MemInfo()
	if snap.Memory == nil {
		c.log.Debug("no memory data available")
	}

	observed := c.probes.ListeningPorts()
	snap.Ports = classify.Reachable(c.cfg.MonitoredPorts, observed)

	snap.Services = make(map[string]bool, len(c.cfg.MonitoredServices))
	for name := range c.cfg.MonitoredServices {
		snap.Services[name] = c.probes.ServiceRunning(name)
	}

	return snap
}
