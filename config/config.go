package config

import (
	"errors"
	"os"

	"github.com/lawbase/casedb/log"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "casedb.yaml"

// Config carries the index configuration: table name to the columns worth a
// secondary index. The "*" entry applies to every table.
type Config struct {
	Indexes map[string][]string `yaml:"indexes"`
}

// Default matches the circulating case-data dumps: the four columns every
// lookup goes through, indexed on every table that has them.
func Default() *Config {
	return &Config{
		Indexes: map[string][]string{
			"*": {"案件名称", "案号", "法院", "案由"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault falls back to the built-in configuration when path is empty
// or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = ConfigFileName
	}
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			log.Infof("no config at %s, using defaults", path)
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// IndexColumns resolves the configured index columns for one table, the
// wildcard entry first, then table-specific additions.
func (c *Config) IndexColumns(table string) []string {
	cols := make([]string, 0)
	seen := map[string]bool{}
	for _, col := range append(append([]string{}, c.Indexes["*"]...), c.Indexes[table]...) {
		if !seen[col] {
			seen[col] = true
			cols = append(cols, col)
		}
	}
	return cols
}
