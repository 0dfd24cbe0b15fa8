package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/state"
)

type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	DataDir     string            `yaml:"data_dir" json:"data_dir"`
	Grace       GraceConfig       `yaml:"grace" json:"grace"`
	Progression ProgressionConfig `yaml:"progression" json:"progression"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type GraceConfig struct {
	DefaultMinutes int `yaml:"default_minutes" json:"default_minutes"`
}

// ProgressionConfig makes the XP table a balance input rather than a
// hardcoded law. Preset picks a named table; explicit stages override it.
type ProgressionConfig struct {
	Preset    string        `yaml:"preset" json:"preset"`
	XPPerTask int           `yaml:"xp_per_task" json:"xp_per_task"`
	Stages    []StageConfig `yaml:"stages" json:"stages"`
}

type StageConfig struct {
	Name  string `yaml:"name" json:"name"`
	MinXP int    `yaml:"min_xp" json:"min_xp"`
	Image string `yaml:"image" json:"image"`
	Color string `yaml:"color" json:"color"`
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8787"},
		DataDir: "data",
		Grace:   GraceConfig{DefaultMinutes: state.DefaultGraceMinutes},
		Progression: ProgressionConfig{
			Preset:    "default",
			XPPerTask: pet.DefaultXPPerTask,
		},
	}
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8787"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	c.Grace.DefaultMinutes = state.ClampGraceMinutes(c.Grace.DefaultMinutes)
	if c.Progression.XPPerTask <= 0 {
		c.Progression.XPPerTask = pet.DefaultXPPerTask
	}
}

// PetProgression resolves the configured XP table.
func (c *Config) PetProgression() pet.Progression {
	prog := pet.Progression{XPPerTask: c.Progression.XPPerTask}
	if prog.XPPerTask <= 0 {
		prog.XPPerTask = pet.DefaultXPPerTask
	}

	if len(c.Progression.Stages) > 0 {
		stages := make([]pet.Stage, len(c.Progression.Stages))
		for i, sc := range c.Progression.Stages {
			stages[i] = pet.Stage{Index: i, Name: sc.Name, MinXP: sc.MinXP, Image: sc.Image, Color: sc.Color}
		}
		prog.Stages = stages
		return prog
	}

	switch c.Progression.Preset {
	case "doubling":
		prog.Stages = doublingStages()
	case "flat":
		prog.Stages = flatStages()
	default:
		prog.Stages = pet.DefaultStages()
	}
	return prog
}

// doublingStages doubles the threshold every stage starting from 10 XP.
func doublingStages() []pet.Stage {
	base := pet.DefaultStages()
	min := 0
	for i := range base {
		base[i].MinXP = min
		if min == 0 {
			min = 10
		} else {
			min *= 2
		}
	}
	return base
}

// flatStages steps a constant 100 XP per stage.
func flatStages() []pet.Stage {
	base := pet.DefaultStages()
	for i := range base {
		base[i].MinXP = i * 100
	}
	return base
}
