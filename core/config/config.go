package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"example.com/fuzzy-cruise/base/floats"
	"example.com/fuzzy-cruise/core/fuzzy"
	"example.com/fuzzy-cruise/core/rules"
)

const (
	DefaultStep        = 0.5
	DefaultMetricsAddr = "127.0.0.1:8080"
)

var (
	errNoInputs       = errors.New("no input variables")
	errNoRules        = errors.New("no rules")
	errDuplicateInput = errors.New("duplicate input variable")
	errEmptyName      = errors.New("empty variable name")
)

type MembershipConfig struct {
	Name string  `toml:"name"`
	X0   float64 `toml:"x0"`
	X1   float64 `toml:"x1"`
	X2   float64 `toml:"x2,omitempty"`
	Clip float64 `toml:"clip"`
}

// VariableConfig defines a fuzzy variable: an inverse grade at the low end
// of the axis, triangles in ascending order, and a grade at the high end.
type VariableConfig struct {
	Name      string             `toml:"name"`
	Start     MembershipConfig   `toml:"start"`
	Triangles []MembershipConfig `toml:"triangles"`
	End       MembershipConfig   `toml:"end"`
}

type Config struct {
	Step        float64          `toml:"step,omitempty"`
	MetricsAddr string           `toml:"metrics_address,omitempty"`
	Inputs      []VariableConfig `toml:"inputs"`
	Output      VariableConfig   `toml:"output"`
	Rules       []rules.Rule     `toml:"rules"`
}

// Model is a validated configuration, ready for inference.
type Model struct {
	Inputs []*fuzzy.Variable
	Output *fuzzy.Variable
	Rules  []rules.Rule
	Step   float64
}

func Load(configFile string) (*Config, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return Decode(raw)
}

// Decode parses a TOML configuration. Keys that are absent take their
// defaults; a step that is present is kept as given and checked by Model.
func Decode(raw []byte) (*Config, error) {
	cfg := Config{Step: DefaultStep}
	err := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = DefaultMetricsAddr
	}
	return &cfg, nil
}

func (c MembershipConfig) inverseGrade() fuzzy.MembershipFunction {
	return fuzzy.NewInverseGrade(c.Name, c.X0, c.X1, c.Clip)
}

func (c MembershipConfig) triangle() fuzzy.MembershipFunction {
	return fuzzy.NewTriangle(c.Name, c.X0, c.X1, c.X2, c.Clip)
}

func (c MembershipConfig) grade() fuzzy.MembershipFunction {
	return fuzzy.NewGrade(c.Name, c.X0, c.X1, c.Clip)
}

func (c VariableConfig) Variable() (*fuzzy.Variable, error) {
	if c.Name == "" {
		return nil, errEmptyName
	}
	ts := make([]fuzzy.MembershipFunction, len(c.Triangles))
	for i, t := range c.Triangles {
		ts[i] = t.triangle()
	}
	return fuzzy.NewVariable(c.Name, c.Start.inverseGrade(), ts, c.End.grade())
}

// Model builds the variables and checks every rule against them. All
// problems are reported together.
func (c *Config) Model() (*Model, error) {
	var err error
	if !floats.Finite(c.Step) || c.Step <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %v", fuzzy.ErrStep, c.Step))
	}
	if len(c.Inputs) == 0 {
		err = multierr.Append(err, errNoInputs)
	}
	if len(c.Rules) == 0 {
		err = multierr.Append(err, errNoRules)
	}
	m := &Model{Rules: c.Rules, Step: c.Step}
	inputs := make(map[string]*fuzzy.Variable, len(c.Inputs))
	for _, vc := range c.Inputs {
		v, verr := vc.Variable()
		if verr != nil {
			err = multierr.Append(err, fmt.Errorf("input: %w", verr))
			continue
		}
		if _, ok := inputs[v.Name()]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: %q", errDuplicateInput, v.Name()))
			continue
		}
		inputs[v.Name()] = v
		m.Inputs = append(m.Inputs, v)
	}
	output, verr := c.Output.Variable()
	if verr != nil {
		err = multierr.Append(err, fmt.Errorf("output: %w", verr))
	}
	if err != nil {
		return nil, err
	}
	m.Output = output
	err = rules.Validate(c.Rules, inputs, output)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CruiseControl returns the built-in example: the distance to the vehicle
// ahead and its rate of change select a throttle action.
func CruiseControl() *Config {
	return &Config{
		Step:        DefaultStep,
		MetricsAddr: DefaultMetricsAddr,
		Inputs: []VariableConfig{
			{
				Name:  "distance",
				Start: MembershipConfig{Name: "VerySmall", X0: 1.0, X1: 2.5, Clip: 1.0},
				Triangles: []MembershipConfig{
					{Name: "Small", X0: 1.5, X1: 3.0, X2: 4.5, Clip: 1.0},
					{Name: "Perfect", X0: 3.5, X1: 5.0, X2: 6.5, Clip: 1.0},
					{Name: "Big", X0: 5.5, X1: 7.0, X2: 8.5, Clip: 1.0},
				},
				End: MembershipConfig{Name: "VeryBig", X0: 7.5, X1: 9.0, Clip: 0.0},
			},
			{
				Name:  "delta",
				Start: MembershipConfig{Name: "ShrinkingFast", X0: -4.0, X1: -2.5, Clip: 1.0},
				Triangles: []MembershipConfig{
					{Name: "Shrinking", X0: -3.5, X1: -2.0, X2: -0.5, Clip: 1.0},
					{Name: "Stable", X0: -1.5, X1: 0.0, X2: 1.5, Clip: 1.0},
					{Name: "Growing", X0: 0.5, X1: 2.0, X2: 3.5, Clip: 1.0},
				},
				End: MembershipConfig{Name: "GrowingFast", X0: 2.5, X1: 4.0, Clip: 1.0},
			},
		},
		Output: VariableConfig{
			Name:  "action",
			Start: MembershipConfig{Name: "BrakeHard", X0: -8.0, X1: -5.0, Clip: 0.0},
			Triangles: []MembershipConfig{
				{Name: "SlowDown", X0: -7.0, X1: -4.0, X2: -1.0, Clip: 0.2},
				{Name: "None", X0: -3.0, X1: 0.0, X2: 3.0, Clip: 0.46666},
				{Name: "SpeedUp", X0: 1.0, X1: 4.0, X2: 7.0, Clip: 0.133333},
			},
			End: MembershipConfig{Name: "FloorIt", X0: 5.0, X1: 8.0, Clip: 0.0},
		},
		Rules: []rules.Rule{
			{
				Name: "small-growing",
				When: rules.All(rules.Is("distance", "Small"), rules.Is("delta", "Growing")),
				Then: "None",
			},
			{
				Name: "small-stable",
				When: rules.All(rules.Is("distance", "Small"), rules.Is("delta", "Stable")),
				Then: "SlowDown",
			},
			{
				Name: "perfect-growing",
				When: rules.All(rules.Is("distance", "Perfect"), rules.Is("delta", "Growing")),
				Then: "SpeedUp",
			},
			{
				Name: "verybig-not-growing",
				When: rules.All(
					rules.Is("distance", "VeryBig"),
					rules.Any(
						rules.Not(rules.Is("delta", "Growing")),
						rules.Not(rules.Is("delta", "GrowingFast")),
					),
				),
				Then: "FloorIt",
			},
			{
				Name: "verysmall-growing",
				When: rules.All(rules.Is("distance", "VerySmall"), rules.Is("delta", "Growing")),
				Then: "SlowDown",
			},
			{
				Name: "verysmall",
				When: rules.Is("distance", "VerySmall"),
				Then: "BrakeHard",
			},
		},
	}
}
