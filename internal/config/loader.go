package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mhalley/motdstats/internal/errors"
	"github.com/mhalley/motdstats/internal/metric"
)

// Load reads the INI settings file at path. A missing file is not an
// error: every setting has a documented default and the monitored sets
// stay empty. Malformed INI syntax is the only fatal outcome: it is the
// one startup failure this tool reports instead of rendering.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access config file: "+path,
			"Check file permissions")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the INI syntax in "+path)
	}

	cfg := fromViper(v)
	cfg.Normalize()
	return cfg, nil
}

// fromViper converts flattened "section.key" settings into a typed Config.
// Values that fail to parse are treated as unset and fall back to the
// documented default at this single point, so consumers never see a
// half-parsed value.
func fromViper(v *viper.Viper) *Config {
	cfg := Default()

	cfg.Thresholds.DiskWarning = intSetting(v, "threshold.disk_warning", DefaultDiskWarning)
	cfg.Thresholds.DiskCritical = intSetting(v, "threshold.disk_critical", DefaultDiskCritical)
	cfg.Thresholds.MemWarning = intSetting(v, "threshold.mem_warning", DefaultMemWarning)
	cfg.Thresholds.MemCritical = intSetting(v, "threshold.mem_critical", DefaultMemCritical)
	cfg.Thresholds.SwapWarning = intSetting(v, "threshold.swap_warning", DefaultSwapWarning)
	cfg.Thresholds.SwapCritical = intSetting(v, "threshold.swap_critical", DefaultSwapCritical)

	cfg.Display.MaxRows = intSetting(v, "display.max_rows", DefaultMaxRows)
	cfg.Display.ColWidth = intSetting(v, "display.col_width", DefaultColWidth)

	for _, m := range splitList(v.GetString("disk.fs_exclude")) {
		cfg.ExcludedMounts[m] = struct{}{}
	}
	for _, s := range splitList(v.GetString("services.services_to_monitor")) {
		cfg.MonitoredServices[s] = struct{}{}
	}

	for _, proto := range metric.Protocols() {
		key := "ports." + string(proto) + "_ports_to_monitor"
		for _, n := range portList(v.GetString(key)) {
			cfg.MonitoredPorts[metric.Port{Number: n, Protocol: proto}] = struct{}{}
		}
	}

	return cfg
}

// intSetting parses an integer setting, returning def when the key is
// absent or its value is not an integer.
func intSetting(v *viper.Viper, key string, def int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// splitList splits a comma-separated setting into trimmed tokens,
// discarding empty ones.
func splitList(raw string) []string {
	var items []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			items = append(items, tok)
		}
	}
	return items
}

// portList parses a comma-separated port list. A single invalid token
// (non-numeric or outside [0,65535]) discards the entire list: a port set
// fails closed to empty rather than being applied partially.
func portList(raw string) []int {
	tokens := splitList(raw)
	ports := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 || n > 65535 {
			return nil
		}
		ports = append(ports, n)
	}
	return ports
}

// Normalize replaces out-of-range values with the documented defaults:
// thresholds must sit in [0,100] and display limits must be positive.
//
// It deliberately does not enforce warning < critical. A file that inverts
// a pair gets the literal comparison semantics (the warning tier becomes
// unreachable); guessing an intended order would be worse than honoring
// the file. This is a known configuration-validation gap.
func (c *Config) Normalize() {
	clampPct := func(v *int, def int) {
		if *v < 0 || *v > 100 {
			*v = def
		}
	}
	clampPct(&c.Thresholds.DiskWarning, DefaultDiskWarning)
	clampPct(&c.Thresholds.DiskCritical, DefaultDiskCritical)
	clampPct(&c.Thresholds.MemWarning, DefaultMemWarning)
	clampPct(&c.Thresholds.MemCritical, DefaultMemCritical)
	clampPct(&c.Thresholds.SwapWarning, DefaultSwapWarning)
	clampPct(&c.Thresholds.SwapCritical, DefaultSwapCritical)

	if c.Display.MaxRows <= 0 {
		c.Display.MaxRows = DefaultMaxRows
	}
	if c.Display.ColWidth <= 0 {
		c.Display.ColWidth = DefaultColWidth
	}
}
