// Package defs loads design tokens and style definitions from YAML files.
//
//	tokens:
//	  colorScheme:
//	    green: { background: "#0f0" }
//	styles:
//	  status:
//	    - style: { display: inline-flex, borderRadius: 9999px }
//	    - match: { state: success }
//	      style: { backgroundColor: $colorScheme.green.background }
//	    - match: { icon: null }
//	      css: "margin: 0 4px; color: red"
//
// String values starting with "$" are token references and make definition
// token dependent. Null matcher value requires selector to be unset.
package defs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"fcss/css"
	"fcss/engine"
	"fcss/style"
	"fcss/tokens"
)

const tokenMarker = "$"

type definition struct {
	Match map[string]any `yaml:"match"`
	Style map[string]any `yaml:"style"`
	CSS   string         `yaml:"css"`
}

type file struct {
	Tokens map[string]any          `yaml:"tokens"`
	Styles map[string][]definition `yaml:"styles"`
}

// Set is a loaded definitions file.
type Set struct {
	Tokens *tokens.Table
	styles map[string][]engine.Definition
}

// Load reads definitions file.
func Load(path string, log *zap.Logger) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read definitions: %w", err)
	}
	set, err := Parse(data, log)
	if err != nil {
		return nil, fmt.Errorf("unable to load definitions from %q: %w", path, err)
	}
	return set, nil
}

// Parse decodes definitions from data.
func Parse(data []byte, log *zap.Logger) (*Set, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("defs")

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to decode definitions: %w", err)
	}

	parser := css.NewParser(log)
	set := &Set{
		Tokens: tokens.NewTable(f.Tokens),
		styles: make(map[string][]engine.Definition, len(f.Styles)),
	}
	for name, list := range f.Styles {
		defs := make([]engine.Definition, 0, len(list))
		for i, d := range list {
			tree := style.Tree{}
			if d.CSS != "" {
				block := parser.Parse([]byte(d.CSS), fmt.Sprintf("%s[%d]", name, i))
				for _, w := range block.Warnings {
					log.Warn("Declaration problem", zap.String("styles", name), zap.Int("definition", i), zap.String("warning", w))
				}
				for k, v := range block.Map() {
					tree[k] = v
				}
			}
			// structured declarations win over text ones
			for k, v := range d.Style {
				tree[k] = v
			}
			defs = append(defs, engine.Definition{Match: matcher(d.Match), Source: source(tree)})
		}
		set.styles[name] = defs
		log.Debug("Styles loaded", zap.String("name", name), zap.Int("definitions", len(defs)))
	}
	return set, nil
}

// Names returns sorted styles names.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.styles))
	for name := range s.styles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Definitions returns definitions of named styles.
func (s *Set) Definitions(name string) ([]engine.Definition, bool) {
	defs, ok := s.styles[name]
	return defs, ok
}

// Make registers named styles with engine.
func (s *Set) Make(e *engine.Engine, name string) (*engine.Styles, error) {
	defs, ok := s.styles[name]
	if !ok {
		return nil, fmt.Errorf("styles %q are not defined", name)
	}
	return e.MakeStyles(name, defs...), nil
}

func matcher(m map[string]any) engine.Matcher {
	if m == nil {
		return nil
	}
	out := make(engine.Matcher, len(m))
	for k, v := range m {
		if v == nil {
			v = engine.Unset
		}
		out[k] = v
	}
	return out
}

// source returns Dynamic source when tree references tokens.
func source(tree style.Tree) engine.Source {
	if !hasTokens(tree) {
		return engine.Static(tree)
	}
	return engine.Dynamic(func(a tokens.Accessor) style.Tree {
		return substitute(tree, a)
	})
}

func tokenPath(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	path, ok := strings.CutPrefix(strings.TrimSpace(s), tokenMarker)
	return path, ok && path != ""
}

func hasTokens(tree style.Tree) bool {
	for _, v := range tree {
		if sub, ok := style.AsTree(v); ok {
			if hasTokens(sub) {
				return true
			}
			continue
		}
		if _, ok := tokenPath(v); ok {
			return true
		}
	}
	return false
}

func substitute(tree style.Tree, a tokens.Accessor) style.Tree {
	out := make(style.Tree, len(tree))
	for k, v := range tree {
		if sub, ok := style.AsTree(v); ok {
			out[k] = substitute(sub, a)
			continue
		}
		if path, ok := tokenPath(v); ok {
			out[k] = a.Get(path)
			continue
		}
		out[k] = v
	}
	return out
}
