package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrNoStages = errors.New("config: script has no stages")

// Script describes a chain of animations over one page. Each stage starts
// after the previous stage's targets have all finished.
type Script struct {
	Page   string  `yaml:"page,omitempty"`
	HTML   string  `yaml:"html,omitempty"`
	Output string  `yaml:"output,omitempty"`
	Stages []Stage `yaml:"stages"`
}

type Stage struct {
	Selector string  `yaml:"selector"`
	Preset   string  `yaml:"preset,omitempty"`
	Show     bool    `yaml:"show,omitempty"`
	Options  Options `yaml:"options,omitempty"`
}

// Resolve applies the stage preset, then the explicit options over it.
func (s Stage) Resolve() (Options, error) {
	var opts Options
	if s.Preset != "" {
		p, ok := GetPreset(s.Preset)
		if !ok {
			return Options{}, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, ListPresets())
		}
		opts = p
	}
	return opts.Merge(s.Options), nil
}

func (s *Script) Validate() error {
	if len(s.Stages) == 0 {
		return ErrNoStages
	}
	for i, st := range s.Stages {
		if st.Selector == "" {
			return fmt.Errorf("stage %d: empty selector", i)
		}
		if _, err := st.Resolve(); err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return nil
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func SaveScript(path string, s *Script) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

const DemoPage = `<!DOCTYPE html>
<html>
  <body>
    <h1 id="heading">Hello there, welcome to typewrite</h1>
    <p id="subheading" style="display: none">Characters show up one at a time.</p>
  </body>
</html>
`

// DemoScript animates the heading and, once it is done, reveals and animates
// the subheading.
func DemoScript() *Script {
	return &Script{
		HTML: DemoPage,
		Stages: []Stage{
			{Selector: "#heading", Preset: "heading"},
			{Selector: "#subheading", Preset: "subheading", Show: true},
		},
	}
}
