package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
)

// EnvConfigPath overrides the default config file location
const EnvConfigPath = "CERTBOT_DEPLOYER_CONFIG"

// DefaultFile is used when neither --config nor EnvConfigPath is set
const DefaultFile = "/etc/certbot/certbot_deployer.yaml"

// mainSection holds framework-wide settings rather than deployer arguments
const mainSection = "main"

// Main represents framework-wide settings
type Main struct {
	Verbose bool `yaml:"verbose"`
	Quiet   bool `yaml:"quiet"`
	JSON    bool `yaml:"json"`
}

// Config represents the deploy hook configuration file
type Config struct {
	Main     Main                            `yaml:"main"`
	Sections map[string]map[string]yaml.Node `yaml:"-"`

	// path the config was loaded from, empty when none exists
	path string
}

// New creates an empty Config
func New() *Config {
	return &Config{
		Sections: make(map[string]map[string]yaml.Node),
	}
}

// DefaultPath returns the config path from the environment or the built-in default
func DefaultPath(lookup func(string) (string, bool)) string {
	if p, ok := lookup(EnvConfigPath); ok && p != "" {
		return p
	}
	return DefaultFile
}

// Load reads the config from path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, deployerrors.Wrap(deployerrors.ErrCodeConfig, "failed to read config", err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes config file contents
func Parse(data []byte) (*Config, error) {
	cfg := New()
	if err := cfg.parse(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parse(data []byte) error {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return deployerrors.Wrap(deployerrors.ErrCodeConfig, "failed to parse config", err)
	}

	for name, node := range raw {
		if name == mainSection {
			if err := node.Decode(&c.Main); err != nil {
				return deployerrors.Wrap(deployerrors.ErrCodeConfig, "failed to parse config section main", err)
			}
			continue
		}
		var section map[string]yaml.Node
		if err := node.Decode(&section); err != nil {
			return deployerrors.Wrap(deployerrors.ErrCodeConfig, fmt.Sprintf("config section %s must be a mapping", name), err)
		}
		c.Sections[name] = section
	}
	return nil
}

// Path returns the file the config was loaded from, or "" if none existed
func (c *Config) Path() string {
	return c.path
}

// Section returns the flag values configured for a deployer subcommand.
// Scalars are returned exactly as written in the file. Keys are returned as
// written; flag name normalization happens when they are applied.
func (c *Config) Section(name string) (map[string]string, error) {
	raw, ok := c.Sections[name]
	if !ok {
		return map[string]string{}, nil
	}

	values := make(map[string]string, len(raw))
	for key, node := range raw {
		n := &node
		if n.Kind == yaml.AliasNode && n.Alias != nil {
			n = n.Alias
		}
		switch {
		case n.Kind == yaml.MappingNode, n.Kind == yaml.SequenceNode:
			return nil, deployerrors.Wrap(deployerrors.ErrCodeConfig, fmt.Sprintf("config %s.%s: expected a scalar value", name, key), nil)
		case n.Kind == 0, n.ShortTag() == "!!null":
			continue
		}
		values[key] = n.Value
	}
	return values, nil
}

// SectionNames returns all deployer section names in sorted order
func (c *Config) SectionNames() []string {
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
