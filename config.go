package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// Flag defaults may be set in YAML, either at the top level or in a section
// named after the command:
//
//	log_level: info
//	cover:
//	  width: 1024
var configPaths = []string{"~/.config/steganosaur.yaml", ".steganosaur.yaml"}

func yamlLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		key := strings.ReplaceAll(flag.Name, "-", "_")
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := section[key]; ok {
					return scalar(v)
				}
			}
		}
		if v, ok := values[key]; ok {
			return scalar(v)
		}
		return nil, nil
	}
	return f, nil
}

func scalar(v any) (any, error) {
	switch v.(type) {
	case map[string]any, []any:
		return nil, fmt.Errorf("configuration value %v is not a scalar", v)
	}
	return fmt.Sprint(v), nil
}
