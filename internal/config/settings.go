package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// LoadYAML is a kong configuration loader for a flat YAML settings file.
// Keys are flag names, written either as on the command line or with
// underscores (frame-delta or frame_delta):
//
//	pattern: "MVI_*.MOV"
//	offset: 1m35s
//	frame_delta: "24"
//	prefix: TC_
//	force: true
//
// Keys that match no flag are ignored. Quote values YAML would read as
// numbers (frame_delta: "00").
func LoadYAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}

	var resolve kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		return nil, nil
	}
	return resolve, nil
}
