// Package batch reads YAML manifests that describe several bake jobs.
//
// A manifest has an optional defaults block and a list of jobs:
//
//	defaults:
//	  radius: 8
//	  sourcesize: 3000
//	jobs:
//	  - input: icon.svg
//	    output: icon.png
//	    targetsize: 64
//	    negate: true
//
// Job keys override defaults, which override the caller's base
// configuration. Relative paths resolve against the manifest's directory.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/sdfbake"
)

var (
	// ErrNoJobs is returned for a manifest without jobs.
	ErrNoJobs = errors.New("batch: manifest has no jobs")

	// ErrMissingPath is returned for a job without input or output.
	ErrMissingPath = errors.New("batch: job needs input and output")
)

// Settings are the bake parameters a manifest may set. Nil fields are left
// to the next level down.
type Settings struct {
	SourceSize *int  `yaml:"sourcesize"`
	Radius     *int  `yaml:"radius"`
	TargetSize *int  `yaml:"targetsize"`
	Threads    *int  `yaml:"threads"`
	Negate     *bool `yaml:"negate"`
}

// Apply copies the fields set in s onto cfg.
func (s Settings) Apply(cfg *sdfbake.Config) {
	if s.SourceSize != nil {
		cfg.SourceSize = *s.SourceSize
	}
	if s.Radius != nil {
		cfg.Radius = *s.Radius
	}
	if s.TargetSize != nil {
		cfg.TargetSize = *s.TargetSize
	}
	if s.Threads != nil {
		cfg.Threads = *s.Threads
	}
	if s.Negate != nil {
		cfg.Negate = *s.Negate
	}
}

// Job is one manifest entry.
type Job struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	SaveSource string `yaml:"savesource"`

	Settings `yaml:",inline"`
}

// Manifest is a parsed manifest file.
type Manifest struct {
	Defaults Settings `yaml:"defaults"`
	Jobs     []Job    `yaml:"jobs"`
}

// Task is a job with its paths resolved and its configuration merged.
type Task struct {
	Input      string
	Output     string
	SaveSource string
	Config     sdfbake.Config
}

// Load reads the manifest at path. Relative job paths are resolved against
// the directory containing it.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	m.resolve(filepath.Dir(path))
	return m, nil
}

// Parse decodes a manifest. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoJobs
		}
		return nil, fmt.Errorf("batch: parse manifest: %w", err)
	}
	if len(m.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	for i, j := range m.Jobs {
		if j.Input == "" || j.Output == "" {
			return nil, fmt.Errorf("%w (job %d)", ErrMissingPath, i+1)
		}
	}
	return &m, nil
}

func (m *Manifest) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range m.Jobs {
		j := &m.Jobs[i]
		j.Input = abs(j.Input)
		j.Output = abs(j.Output)
		j.SaveSource = abs(j.SaveSource)
	}
}

// Tasks merges base, the manifest defaults and each job's settings, and
// validates the result. The first invalid job stops the merge.
func (m *Manifest) Tasks(base sdfbake.Config) ([]Task, error) {
	tasks := make([]Task, 0, len(m.Jobs))
	for i, j := range m.Jobs {
		cfg := base
		m.Defaults.Apply(&cfg)
		j.Settings.Apply(&cfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("batch: job %d (%s): %w", i+1, j.Input, err)
		}
		tasks = append(tasks, Task{
			Input:      j.Input,
			Output:     j.Output,
			SaveSource: j.SaveSource,
			Config:     cfg,
		})
	}
	return tasks, nil
}
