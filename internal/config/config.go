package config

import (
	"fmt"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config is the benchmark grid and the metrics passes rendered over it.
type Config struct {
	Setups     []Setup  `yaml:"setups"`
	Traces     []string `yaml:"traces"`
	Schedulers []string `yaml:"schedulers"`
	Passes     []Pass   `yaml:"passes"`
	Results    Results  `yaml:"results"`
	Output     Output   `yaml:"output"`
}

type Setup struct {
	Name   string `yaml:"name"`
	Pretty string `yaml:"pretty"`
}

// Pass is one metrics family read from the same CSV file in every result
// directory, e.g. job or task metrics.
type Pass struct {
	Name    string   `yaml:"name"`
	File    string   `yaml:"file"`
	Title   string   `yaml:"title"`
	Metrics []Metric `yaml:"metrics"`
}

// Metric maps a CSV column to the short label drawn above its bar cluster.
type Metric struct {
	Label  string `yaml:"label"`
	Column string `yaml:"column"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

type Output struct {
	Dir string `yaml:"dir"`
}

// Default returns the grid the benchmark results were produced with.
func Default() *Config {
	return &Config{
		Setups: []Setup{
			{Name: "setup", Pretty: "homogeneous setup"},
			{Name: "setup-heterogeneous", Pretty: "heterogeneous setup"},
			{Name: "setup-distributed", Pretty: "distributed setup"},
		},
		Traces:     []string{"shell", "askalon", "pegasus"},
		Schedulers: []string{"FCP", "Lottery", "DS"},
		Passes: []Pass{
			{
				Name:  "job",
				File:  "job_metrics.csv",
				Title: "Job metrics",
				Metrics: []Metric{
					{Label: "CP", Column: "critical_path"},
					{Label: "WT", Column: "waiting_time"},
					{Label: "MS", Column: "makespan"},
				},
			},
			{
				Name:  "task",
				File:  "task_metrics.csv",
				Title: "Task metrics",
				Metrics: []Metric{
					{Label: "EX", Column: "execution"},
					{Label: "WT", Column: "waiting"},
					{Label: "TA", Column: "turnaround"},
				},
			},
		},
		Results: Results{Dir: "./results"},
		Output:  Output{Dir: "."},
	}
}

// Load reads a grid from path. An empty path yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Pass returns the pass with the given name.
func (c *Config) Pass(name string) (*Pass, bool) {
	for i := range c.Passes {
		if c.Passes[i].Name == name {
			return &c.Passes[i], true
		}
	}
	return nil, false
}

// Labels returns the metric labels in draw order.
func (p *Pass) Labels() []string {
	labels := make([]string, len(p.Metrics))
	for i, m := range p.Metrics {
		labels[i] = m.Label
	}
	return labels
}

// Columns returns the CSV column names in metric order.
func (p *Pass) Columns() []string {
	cols := make([]string, len(p.Metrics))
	for i, m := range p.Metrics {
		cols[i] = m.Column
	}
	return cols
}

func validate(cfg *Config) error {
	if len(cfg.Setups) == 0 {
		return fmt.Errorf("no setups defined")
	}
	seen := map[string]bool{}
	for i := range cfg.Setups {
		s := &cfg.Setups[i]
		if s.Name == "" {
			return fmt.Errorf("setup %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("setup %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if s.Pretty == "" {
			s.Pretty = s.Name
		}
	}
	if err := requireUnique("trace", cfg.Traces); err != nil {
		return err
	}
	if err := requireUnique("scheduler", cfg.Schedulers); err != nil {
		return err
	}
	if len(cfg.Passes) == 0 {
		return fmt.Errorf("no passes defined")
	}
	passes := map[string]bool{}
	for i := range cfg.Passes {
		p := &cfg.Passes[i]
		if p.Name == "" {
			return fmt.Errorf("pass %d: name is required", i)
		}
		if passes[p.Name] {
			return fmt.Errorf("pass %q: duplicate name", p.Name)
		}
		passes[p.Name] = true
		if p.File == "" {
			return fmt.Errorf("pass %q: file is required", p.Name)
		}
		if len(p.Metrics) == 0 {
			return fmt.Errorf("pass %q: no metrics defined", p.Name)
		}
		labels, columns := map[string]bool{}, map[string]bool{}
		for j, m := range p.Metrics {
			if m.Label == "" || m.Column == "" {
				return fmt.Errorf("pass %q: metric %d: label and column are required", p.Name, j)
			}
			if labels[m.Label] {
				return fmt.Errorf("pass %q: metric label %q: duplicate name", p.Name, m.Label)
			}
			if columns[m.Column] {
				return fmt.Errorf("pass %q: metric column %q: duplicate name", p.Name, m.Column)
			}
			labels[m.Label], columns[m.Column] = true, true
		}
		if p.Title == "" {
			p.Title = cases.Title(language.English).String(p.Name) + " metrics"
		}
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "./results"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	return nil
}

func requireUnique(kind string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("no %ss defined", kind)
	}
	seen := map[string]bool{}
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("%s %d: name is required", kind, i)
		}
		if seen[n] {
			return fmt.Errorf("%s %q: duplicate name", kind, n)
		}
		seen[n] = true
	}
	return nil
}
