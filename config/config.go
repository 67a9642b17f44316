// Package config reads post-processing configuration files. A file is a JSON (or JSON5) object
// whose keys name stages, each holding that stage's attributes, plus the reserved `debug` and
// `log` keys that control logging.
package config

import (
	"sort"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/imx500/logging"
)

const (
	debugKey = "debug"
	logKey   = "log"
)

// Config is a parsed post-processing configuration file.
type Config struct {
	// ConfigFilePath is the file the config was read from, if any.
	ConfigFilePath string
	// Debug turns on debug logging everywhere.
	Debug     bool
	LogConfig []logging.LoggerPatternConfig
	// Stages maps stage names to their raw attributes.
	Stages map[string]map[string]interface{}
}

// Validate checks the logging section. Stage attributes are validated when decoded.
func (c *Config) Validate() error {
	for i, pattern := range c.LogConfig {
		path := logKey + "." + strconv.Itoa(i)
		if pattern.Pattern == "" {
			return NewConfigValidationFieldRequiredError(path, "pattern")
		}
		if _, err := logging.LevelFromString(pattern.Level); err != nil {
			return NewConfigValidationError(path, err)
		}
	}
	return nil
}

// StageNames returns the names of the configured stages, sorted.
func (c *Config) StageNames() []string {
	names := make([]string, 0, len(c.Stages))
	for name := range c.Stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stage returns the raw attributes of the named stage.
func (c *Config) Stage(name string) (map[string]interface{}, bool) {
	attrs, ok := c.Stages[name]
	return attrs, ok
}

// DecodeStage decodes the attributes of the named stage into out, a pointer to a struct with
// `json` tags. It returns the attribute keys that no field consumed.
func (c *Config) DecodeStage(name string, out interface{}) ([]string, error) {
	attrs, ok := c.Stage(name)
	if !ok {
		return nil, errors.Errorf("no %q stage in config %q", name, c.ConfigFilePath)
	}
	return DecodeAttributes(attrs, out)
}

// DecodeAttributes decodes an attribute map into out, a pointer to a struct with `json` tags. It
// returns the attribute keys that no field consumed, sorted.
func DecodeAttributes(attrs map[string]interface{}, out interface{}) ([]string, error) {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Result:   out,
		Metadata: &md,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrap(err, "cannot decode attributes")
	}
	sort.Strings(md.Unused)
	return md.Unused, nil
}
