package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
	"gopkg.in/yaml.v3"
)

// Definition describes one node and, for decorators, its child.
type Definition struct {
	Kind   string         `yaml:"kind" json:"kind"`
	Name   string         `yaml:"name,omitempty" json:"name,omitempty"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
	Child  *Definition    `yaml:"child,omitempty" json:"child,omitempty"`
}

// File is the top-level structure of a definition file.
type File struct {
	Name string      `yaml:"name" json:"name"`
	Root *Definition `yaml:"root" json:"root"`
}

// Parse decodes a YAML (or JSON) definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tree definition: %w", err)
	}
	if f.Root == nil {
		return nil, fmt.Errorf("definition has no root: %w", domain.ErrInvalidDefinition)
	}
	return &f, nil
}

// LoadFile reads a definition file. The format follows the extension: .json is
// JSON, anything else YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree definition: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) != ".json" {
		f, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return f, nil
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Root == nil {
		return nil, fmt.Errorf("%s: definition has no root: %w", path, domain.ErrInvalidDefinition)
	}
	return &f, nil
}

// Validate checks every node's kind and arity without building anything.
// All problems are reported together.
func Validate(def *Definition, reg *registry.Registry) error {
	var errs []error
	walk(def, "root", func(d *Definition, path string) {
		if d.Kind == "" {
			errs = append(errs, fmt.Errorf("%s: missing kind: %w", path, domain.ErrInvalidDefinition))
			return
		}
		arity, err := reg.Arity(d.Kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return
		}
		switch {
		case arity == registry.Decorator && d.Child == nil:
			errs = append(errs, fmt.Errorf("%s: %s needs a child: %w", path, d.Kind, domain.ErrInvalidDefinition))
		case arity == registry.Leaf && d.Child != nil:
			errs = append(errs, fmt.Errorf("%s: %s takes no child: %w", path, d.Kind, domain.ErrInvalidDefinition))
		}
	})
	return errors.Join(errs...)
}

// Build constructs the behaviours bottom-up.
func Build(def *Definition, reg *registry.Registry, env registry.Env) (behaviour.Behaviour, error) {
	return build(def, "root", reg, env)
}

func build(def *Definition, path string, reg *registry.Registry, env registry.Env) (behaviour.Behaviour, error) {
	if def == nil {
		return nil, fmt.Errorf("%s: empty node: %w", path, domain.ErrInvalidDefinition)
	}

	var child behaviour.Behaviour
	if def.Child != nil {
		c, err := build(def.Child, path+"/child", reg, env)
		if err != nil {
			return nil, err
		}
		child = c
	}

	node, err := reg.Build(env, registry.Spec{
		Kind:   def.Kind,
		Name:   def.Name,
		Params: def.Params,
		Child:  child,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

func walk(def *Definition, path string, fn func(*Definition, string)) {
	for d, p := def, path; d != nil; d, p = d.Child, p+"/child" {
		fn(d, p)
	}
}
