package config

import (
	"bytes"
	"io"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/imx500/logging"
)

// Read reads a config from the given file. Environment variables in the file are expanded
// before it is parsed.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg, err := FromReader(filePath, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	logger.Debugw("read config", "path", filePath, "stages", cfg.StageNames())
	return cfg, nil
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal config %q", originalPath)
	}
	if raw == nil {
		return nil, errors.Errorf("config %q is not an object", originalPath)
	}

	cfg := &Config{
		ConfigFilePath: originalPath,
		Stages:         map[string]map[string]interface{}{},
	}
	for key, value := range raw {
		switch key {
		case debugKey:
			debug, ok := value.(bool)
			if !ok {
				return nil, NewConfigValidationError(key, errors.Errorf("expected a boolean, got %T", value))
			}
			cfg.Debug = debug
		case logKey:
			if err := mapstructure.Decode(value, &cfg.LogConfig); err != nil {
				return nil, NewConfigValidationError(key, err)
			}
		default:
			attrs, ok := value.(map[string]interface{})
			if !ok {
				return nil, NewConfigValidationError(key, errors.Errorf("stage attributes must be an object, got %T", value))
			}
			cfg.Stages[key] = attrs
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
