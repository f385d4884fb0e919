// Package blueprint builds composed entity types from declarative YAML or
// JSON descriptions. It is a consumer convenience on top of the enco
// composition mechanism: the declaration's component list order is the
// attachment order, with all the dispatch and initializer-chain consequences
// that carries.
package blueprint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/entco/entco/pkg/enco"
	"github.com/entco/entco/pkg/observability/log"
)

// Config is a unified structure able to describe entity types in JSON or
// YAML. Component references are resolved by name through a Registry.
type Config struct {
	Types map[string]ConfigType `json:"types" yaml:"types"`
}

// ConfigType declares one entity type: an ordered component list plus
// optional class-level data for the bare type.
type ConfigType struct {
	Components []ConfigComponent `json:"components" yaml:"components"`
	Data       map[string]any    `json:"data,omitempty" yaml:"data,omitempty"`
}

// ConfigComponent is one attachment: the registered component name and the
// construction arguments to capture at composition time.
type ConfigComponent struct {
	Name  string         `json:"name" yaml:"name"`
	Args  []any          `json:"args,omitempty" yaml:"args,omitempty"`
	Named map[string]any `json:"named,omitempty" yaml:"named,omitempty"`
}

// LoadYAML loads config from a YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadJSON loads config from a JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Build composes every declared type using definitions from the registry.
// Types are built in sorted name order; a failure on any declaration aborts
// the whole build.
func (c *Config) Build(reg *Registry, logger log.Log) (map[string]*enco.Type, error) {
	if logger == nil {
		logger = log.Discard()
	}
	names := make([]string, 0, len(c.Types))
	for name := range c.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	types := make(map[string]*enco.Type, len(names))
	for _, name := range names {
		ct := c.Types[name]
		base := enco.NewType(name)
		for k, v := range ct.Data {
			base.WithData(k, v)
		}
		b := enco.NewBuilder(base).WithLogger(logger)
		for _, cc := range ct.Components {
			def, err := reg.Lookup(cc.Name)
			if err != nil {
				return nil, fmt.Errorf("blueprint: type %s: %w", name, err)
			}
			b.Attach(def.BindNamed(cc.Named, cc.Args...))
		}
		t, err := b.Finalize()
		if err != nil {
			return nil, fmt.Errorf("blueprint: type %s: %w", name, err)
		}
		types[name] = t
	}
	return types, nil
}
