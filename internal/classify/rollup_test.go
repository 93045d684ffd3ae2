package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhalley/motdstats/internal/config"
	"github.com/mhalley/motdstats/internal/metric"
)

func defaultThresholds() config.Thresholds {
	return config.Default().Thresholds
}

func TestMemoryStatsFrom(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		assert.Nil(t, MemoryStatsFrom(nil))
	})

	t.Run("zero total memory", func(t *testing.T) {
		assert.Nil(t, MemoryStatsFrom(&metric.MemInfo{MemTotal: 0, MemFree: 0}))
	})

	t.Run("derives quantities in MiB", func(t *testing.T) {
		m := &metric.MemInfo{
			MemTotal:     4096000, // 4000 MiB
			MemFree:      1024000, // 1000 MiB
			SwapTotal:    2048000,
			SwapFree:     1843200, // 10% used
			Buffers:      409600,
			Cached:       819200,
			SReclaimable: 204800,
		}

		s := MemoryStatsFrom(m)
		require.NotNil(t, s)

		assert.Equal(t, int64(3000), s.MemUsedMB)
		assert.Equal(t, 75, s.MemPercent)
		assert.True(t, s.SwapConfigured)
		assert.Equal(t, int64(200), s.SwapUsedMB)
		assert.Equal(t, 10, s.SwapPercent)
		assert.Equal(t, int64(400), s.BuffersMB)
		assert.Equal(t, 10, s.BuffersPercent)
		assert.Equal(t, int64(800), s.CachedMB)
		assert.Equal(t, 20, s.CachedPercent)
		assert.Equal(t, int64(200), s.ReclaimableMB)
		assert.Equal(t, 5, s.ReclaimablePercent)
	})

	t.Run("zero swap total leaves swap unconfigured", func(t *testing.T) {
		m := &metric.MemInfo{MemTotal: 1024, MemFree: 512, SwapTotal: 0, SwapFree: 0}

		s := MemoryStatsFrom(m)
		require.NotNil(t, s)

		assert.False(t, s.SwapConfigured, "no division by zero path for swap")
		assert.Equal(t, int64(0), s.SwapUsedMB)
		assert.Equal(t, 0, s.SwapPercent)
	})
}

func TestMemoryRows(t *testing.T) {
	t.Run("nil stats yields no rows", func(t *testing.T) {
		assert.Nil(t, MemoryRows(nil, defaultThresholds()))
	})

	t.Run("five rows in fixed order", func(t *testing.T) {
		s := &MemoryStats{
			MemUsedMB:  3000,
			MemPercent: 75,

			SwapConfigured: true,
			SwapUsedMB:     200,
			SwapPercent:    25,

			BuffersMB:      400,
			BuffersPercent: 10,
			CachedMB:       800,
			CachedPercent:  20,
		}

		rows := MemoryRows(s, defaultThresholds())
		require.Len(t, rows, 5)

		assert.Equal(t, "Memory", rows[0].Title)
		assert.Equal(t, "3000", rows[0].UsedMB)
		assert.Equal(t, "75", rows[0].Percent)
		assert.Equal(t, Normal, rows[0].Severity)

		assert.Equal(t, "Swap", rows[1].Title)
		assert.Equal(t, Critical, rows[1].Severity, "25 percent swap is past the default critical of 20")

		assert.Equal(t, "Buffers", rows[2].Title)
		assert.Equal(t, "Cached", rows[3].Title)
		assert.Equal(t, "Reclaimable", rows[4].Title)
	})

	t.Run("unconfigured swap shows placeholder at normal severity", func(t *testing.T) {
		s := &MemoryStats{MemUsedMB: 100, MemPercent: 50}

		rows := MemoryRows(s, defaultThresholds())
		require.Len(t, rows, 5)

		assert.Equal(t, "---", rows[1].UsedMB)
		assert.Equal(t, "---", rows[1].Percent)
		assert.Equal(t, Normal, rows[1].Severity)
	})
}

func TestDiskRollup(t *testing.T) {
	th := defaultThresholds()

	t.Run("empty is normal", func(t *testing.T) {
		assert.Equal(t, Normal, DiskRollup(nil, th))
	})

	t.Run("takes the worst mount", func(t *testing.T) {
		disks := []metric.DiskUsage{
			{MountPoint: "/", UsedPercent: 50},
			{MountPoint: "/var", UsedPercent: 95},
			{MountPoint: "/home", UsedPercent: 82},
		}
		assert.Equal(t, Critical, DiskRollup(disks, th))
	})

	t.Run("warning only", func(t *testing.T) {
		disks := []metric.DiskUsage{
			{MountPoint: "/", UsedPercent: 85},
		}
		assert.Equal(t, Warning, DiskRollup(disks, th))
	})
}

func TestMemoryRollup(t *testing.T) {
	th := defaultThresholds()

	t.Run("nil stats is normal", func(t *testing.T) {
		assert.Equal(t, Normal, MemoryRollup(nil, th))
	})

	t.Run("reclaimable is excluded", func(t *testing.T) {
		s := &MemoryStats{MemPercent: 10, ReclaimablePercent: 99}
		assert.Equal(t, Normal, MemoryRollup(s, th))
	})

	t.Run("cached drives the rollup", func(t *testing.T) {
		s := &MemoryStats{MemPercent: 10, CachedPercent: 85}
		assert.Equal(t, Warning, MemoryRollup(s, th))
	})

	t.Run("unconfigured swap does not contribute", func(t *testing.T) {
		s := &MemoryStats{MemPercent: 10, SwapConfigured: false, SwapPercent: 0}
		assert.Equal(t, Normal, MemoryRollup(s, th),
			"the guard must skip unconfigured swap entirely")
	})

	t.Run("configured swap contributes", func(t *testing.T) {
		s := &MemoryStats{MemPercent: 10, SwapConfigured: true, SwapPercent: 15}
		assert.Equal(t, Warning, MemoryRollup(s, th))
	})
}

func TestServicesOK(t *testing.T) {
	tests := []struct {
		name     string
		ports    map[metric.Port]bool
		services map[string]bool
		want     bool
	}{
		{
			name: "empty sets are vacuously ok",
			want: true,
		},
		{
			name:     "all up",
			ports:    map[metric.Port]bool{{Number: 22, Protocol: metric.TCP}: true},
			services: map[string]bool{"sshd": true},
			want:     true,
		},
		{
			name:  "one port down",
			ports: map[metric.Port]bool{{Number: 22, Protocol: metric.TCP}: true, {Number: 443, Protocol: metric.TCP}: false},
			want:  false,
		},
		{
			name:     "one service down",
			services: map[string]bool{"sshd": true, "nginx": false},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServicesOK(tt.ports, tt.services))
		})
	}
}

func TestSummarize(t *testing.T) {
	snap := &metric.Snapshot{
		Timestamp: time.Now(),
		Disks: []metric.DiskUsage{
			{MountPoint: "/", UsedPercent: 91, Available: "5.0 GiB"},
		},
		Memory: &metric.MemInfo{
			MemTotal: 1000,
			MemFree:  500,
		},
		Ports:    map[metric.Port]bool{{Number: 22, Protocol: metric.TCP}: true},
		Services: map[string]bool{"sshd": false},
	}
	th := defaultThresholds()

	sum := Summarize(snap, th)

	assert.Equal(t, Critical, sum.DiskStatus)
	assert.Equal(t, Normal, sum.MemoryStatus)
	assert.False(t, sum.ServicesOK)
	require.NotNil(t, sum.Memory)
	assert.Equal(t, 50, sum.Memory.MemPercent)

	// Classification is a pure function of its inputs.
	again := Summarize(snap, th)
	assert.Equal(t, sum, again)
}
