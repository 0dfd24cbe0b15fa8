package config

import (
	"os"
	"strconv"
)

// ApplyEnv overlays environment variables onto the config.
// Falls back to the existing values if variables are not set.
func (c *Config) ApplyEnv() {
	if addr := os.Getenv("MYTASKLISTS_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if dir := os.Getenv("MYTASKLISTS_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if val, ok := getEnvInt("MYTASKLISTS_GRACE_MINUTES"); ok {
		c.Grace.DefaultMinutes = val
	}
	if val, ok := getEnvInt("MYTASKLISTS_XP_PER_TASK"); ok && val > 0 {
		c.Progression.XPPerTask = val
	}
	if preset := os.Getenv("MYTASKLISTS_PROGRESSION"); preset != "" {
		c.Progression.Preset = preset
	}
	c.normalize()
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return num, true
}
