// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// ToGo: converts a resolved node tree into native Go values. Mappings
// become map[string]any (or map[any]any under MapAsMap), sequences become
// []any, merge pairs splice their source mappings. Reference cycles are
// rejected before any value is produced.

package yamlcore

import (
	"errors"
	"fmt"
)

// ToGo converts the document contents to a native Go value.
func (d *Document) ToGo() (any, error) {
	if d.HasErrors() {
		return nil, d.FirstError()
	}
	opts := d.Options
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	if err := checkCycles(d.Contents, map[Node]bool{}); err != nil {
		return nil, err
	}
	c := &goConverter{opts: opts}
	return c.convert(d.Contents)
}

// NodeToGo converts a standalone node tree to a native Go value.
func NodeToGo(n Node, opts *Options) (any, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	if err := checkCycles(n, map[Node]bool{}); err != nil {
		return nil, err
	}
	c := &goConverter{opts: opts}
	return c.convert(n)
}

// checkCycles rejects aliases that resolve to one of their own ancestors,
// which host-side mutation can produce.
func checkCycles(n Node, active map[Node]bool) error {
	if n == nil {
		return nil
	}
	if active[n] {
		return errors.New("yamldoc: alias resolves to an ancestor of itself, forming a reference cycle")
	}
	active[n] = true
	defer delete(active, n)
	switch v := n.(type) {
	case *Alias:
		return checkCycles(v.Source, active)
	case *YAMLSeq:
		for _, it := range v.Items {
			if err := checkCycles(it, active); err != nil {
				return err
			}
		}
	case *YAMLMap:
		for _, p := range v.Items {
			if err := checkCycles(p.Key, active); err != nil {
				return err
			}
			if err := checkCycles(p.Value, active); err != nil {
				return err
			}
		}
	}
	return nil
}

type goConverter struct {
	opts *Options
}

func (c *goConverter) convert(n Node) (any, error) {
	switch v := n.(type) {
	case nil:
		return nil, nil
	case *Scalar:
		return v.Value, nil
	case *Alias:
		return c.convert(v.Source)
	case *YAMLSeq:
		out := make([]any, 0, len(v.Items))
		for _, it := range v.Items {
			gv, err := c.convert(it)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	case *YAMLMap:
		return c.convertMap(v)
	}
	return nil, fmt.Errorf("yamldoc: cannot convert node of type %s", n.NodeType())
}

func (c *goConverter) convertMap(m *YAMLMap) (any, error) {
	if c.opts.MapAsMap {
		out := make(map[any]any, len(m.Items))
		merge := func(src *YAMLMap) error {
			for _, p := range src.Items {
				k, err := c.keyValue(p.Key)
				if err != nil {
					return err
				}
				if _, exists := out[k]; exists {
					continue
				}
				gv, err := c.convert(p.Value)
				if err != nil {
					return err
				}
				out[k] = gv
			}
			return nil
		}
		if err := c.mergePairs(m, func(p *Pair) error {
			k, err := c.keyValue(p.Key)
			if err != nil {
				return err
			}
			gv, err := c.convert(p.Value)
			if err != nil {
				return err
			}
			out[k] = gv
			return nil
		}, merge); err != nil {
			return nil, err
		}
		return out, nil
	}

	out := make(map[string]any, len(m.Items))
	merge := func(src *YAMLMap) error {
		for _, p := range src.Items {
			k := c.keyString(p.Key)
			if _, exists := out[k]; exists {
				continue
			}
			gv, err := c.convert(p.Value)
			if err != nil {
				return err
			}
			out[k] = gv
		}
		return nil
	}
	if err := c.mergePairs(m, func(p *Pair) error {
		gv, err := c.convert(p.Value)
		if err != nil {
			return err
		}
		out[c.keyString(p.Key)] = gv
		return nil
	}, merge); err != nil {
		return nil, err
	}
	return out, nil
}

// mergePairs drives one pass over a mapping's pairs, dispatching ordinary
// pairs to set and '<<' merge pairs to mergeFrom for each source mapping.
// Ordinary pairs override merged keys wherever they stand in the mapping,
// matching YAML 1.1 merge rules.
func (c *goConverter) mergePairs(m *YAMLMap, set func(*Pair) error, mergeFrom func(*YAMLMap) error) error {
	// Ordinary keys first so merged keys never override them.
	for _, p := range m.Items {
		if p.Merge {
			continue
		}
		if err := set(p); err != nil {
			return err
		}
	}
	for _, p := range m.Items {
		if !p.Merge {
			continue
		}
		sources, err := mergeSources(p.Value)
		if err != nil {
			return err
		}
		for _, src := range sources {
			if err := mergeFrom(src); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeSources extracts the mappings a merge value splices in, in order.
func mergeSources(v Node) ([]*YAMLMap, error) {
	deref := func(n Node) (Node, bool) {
		for {
			a, ok := n.(*Alias)
			if !ok {
				return n, true
			}
			n = a.Source
		}
	}
	n, _ := deref(v)
	switch t := n.(type) {
	case *YAMLMap:
		return []*YAMLMap{t}, nil
	case *YAMLSeq:
		out := make([]*YAMLMap, 0, len(t.Items))
		for _, it := range t.Items {
			src, _ := deref(it)
			m, ok := src.(*YAMLMap)
			if !ok {
				return nil, errors.New("yamldoc: merge sources must be maps")
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, errors.New("yamldoc: merge sources must be maps")
}

// keyString renders a key node as a string map key.
func (c *goConverter) keyString(key Node) string {
	v, err := c.convert(key)
	if err != nil || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// keyValue produces a hashable key for MapAsMap mode; unhashable
// collection keys degrade to their string rendering.
func (c *goConverter) keyValue(key Node) (any, error) {
	v, err := c.convert(key)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case []any, map[string]any, map[any]any, []byte:
		return fmt.Sprint(v), nil
	}
	return v, nil
}

// ApplyReviver walks a converted value bottom-up, replacing each entry
// with the reviver's return. A nil return drops map entries, mirroring
// JSON.parse semantics.
func ApplyReviver(reviver func(key string, value any) any, v any) any {
	return reviveValue(reviver, "", v)
}

func reviveValue(reviver func(key string, value any) any, key string, v any) any {
	switch t := v.(type) {
	case []any:
		for i := range t {
			t[i] = reviveValue(reviver, fmt.Sprint(i), t[i])
		}
	case map[string]any:
		for k, mv := range t {
			rv := reviveValue(reviver, k, mv)
			if rv == nil {
				delete(t, k)
			} else {
				t[k] = rv
			}
		}
	case map[any]any:
		for k, mv := range t {
			rv := reviveValue(reviver, fmt.Sprint(k), mv)
			if rv == nil {
				delete(t, k)
			} else {
				t[k] = rv
			}
		}
	}
	return reviver(key, v)
}
