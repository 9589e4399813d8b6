package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackchart/pkg/core/chart"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Format is a chart config encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath returns the config format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"cannot infer config format from %q (want .toml, .yaml, .yml or .json)", path)
}

// DecodeConfig decodes a chart config in the given format from r. Unknown
// keys are errors. DecodeConfig does not validate the chart itself; that
// happens when the chart is built.
func DecodeConfig(r io.Reader, format Format) (chart.Config, error) {
	var cfg chart.Config
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return chart.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return chart.Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return chart.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return chart.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode json")
		}
	default:
		return chart.Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config format %q", format)
	}
	return cfg, nil
}

// ParseConfig decodes a chart config held in memory.
func ParseConfig(data []byte, format Format) (chart.Config, error) {
	return DecodeConfig(bytes.NewReader(data), format)
}

// ReadConfig reads the chart config at path. The format follows the file
// extension.
func ReadConfig(path string) (chart.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return chart.Config{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return chart.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return chart.Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f, format)
	if err != nil {
		return chart.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
