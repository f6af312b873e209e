// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// CreateNode: builds AST nodes from arbitrary host values. Capability
// interfaces are consulted first so host types control their own shape;
// reflection covers the rest of the value families.

package yamlcore

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"time"
)

// NodeConverter is implemented by host types that build their own node
// representation.
type NodeConverter interface {
	ToYAMLNode() (Node, error)
}

// Sequencer is implemented by host types that present themselves as an
// ordered sequence.
type Sequencer interface {
	SeqItems() []any
}

// MapItem is one ordered key/value entry provided by an OrderedMapper.
type MapItem struct {
	Key   any
	Value any
}

// OrderedMapper is implemented by host types that present themselves as an
// ordered mapping. It takes precedence over reflection, whose map
// iteration order would otherwise be sorted for determinism.
type OrderedMapper interface {
	MapItems() []MapItem
}

// CreateNode converts a host value into an AST node. When tag is
// non-empty the node is pinned to that tag, which must be known to the
// schema implied by opts unless it is a local tag starting with '!'.
// wrapScalars is accepted for API compatibility;
// scalar values are always carried inside Scalar nodes.
func CreateNode(value any, wrapScalars bool, tag string, opts *Options) (Node, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	b := &nodeBuilder{opts: opts, wrapScalars: wrapScalars}
	n, err := b.build(value)
	if err != nil {
		return nil, err
	}
	if tag != "" && n != nil {
		full := tag
		if strings.HasPrefix(tag, "!!") {
			full = DefaultTagPrefix + tag[2:]
		}
		schema, err := NewSchema(opts.SchemaName, opts.Version, opts.CustomTags)
		if err != nil {
			return nil, err
		}
		if schema.ForTag(full, n.NodeType()) == nil && !strings.HasPrefix(full, "!") {
			return nil, fmt.Errorf("yamldoc: unknown custom tag %q", tag)
		}
		n.Base().Tag = full
	}
	return n, nil
}

type nodeBuilder struct {
	opts        *Options
	wrapScalars bool
}

func (b *nodeBuilder) build(value any) (Node, error) {
	switch v := value.(type) {
	case nil:
		return &Scalar{BaseNode: BaseNode{Tag: NullTag}}, nil
	case Node:
		return v, nil
	case *Pair:
		m := &YAMLMap{}
		m.Tag = MapTag
		m.Items = []*Pair{v}
		return m, nil
	case NodeConverter:
		return v.ToYAMLNode()
	case OrderedMapper:
		m := &YAMLMap{}
		m.Tag = MapTag
		for _, item := range v.MapItems() {
			pair, err := b.buildPair(item.Key, item.Value)
			if err != nil {
				return nil, err
			}
			m.Items = append(m.Items, pair)
		}
		return m, nil
	case Sequencer:
		s := &YAMLSeq{}
		s.Tag = SeqTag
		for _, item := range v.SeqItems() {
			n, err := b.build(item)
			if err != nil {
				return nil, err
			}
			s.Items = append(s.Items, n)
		}
		return s, nil
	case bool:
		return &Scalar{BaseNode: BaseNode{Tag: BoolTag}, Value: v}, nil
	case string:
		return &Scalar{BaseNode: BaseNode{Tag: StrTag}, Value: v}, nil
	case int:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: int64(v)}, nil
	case int8:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: int64(v)}, nil
	case int16:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: int64(v)}, nil
	case int32:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: int64(v)}, nil
	case int64:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: v}, nil
	case uint:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: uint64(v)}, nil
	case uint8:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: int64(v)}, nil
	case uint16:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: int64(v)}, nil
	case uint32:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: int64(v)}, nil
	case uint64:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: v}, nil
	case float32:
		return &Scalar{BaseNode: BaseNode{Tag: FloatTag}, Value: float64(v)}, nil
	case float64:
		return &Scalar{BaseNode: BaseNode{Tag: FloatTag}, Value: v}, nil
	case []byte:
		return &Scalar{BaseNode: BaseNode{Tag: BinaryTag}, Value: v, Style: BlockLiteral}, nil
	case *big.Int:
		return &Scalar{BaseNode: BaseNode{Tag: IntTag}, Value: v}, nil
	case time.Time:
		return &Scalar{BaseNode: BaseNode{Tag: TimestampTag}, Value: v, Format: "TIME"}, nil
	}
	return b.buildReflect(reflect.ValueOf(value))
}

func (b *nodeBuilder) buildPair(key, value any) (*Pair, error) {
	k, err := b.build(key)
	if err != nil {
		return nil, err
	}
	v, err := b.build(value)
	if err != nil {
		return nil, err
	}
	return &Pair{Key: k, Value: v}, nil
}

func (b *nodeBuilder) buildReflect(rv reflect.Value) (Node, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return b.build(nil)
		}
		return b.buildReflect(rv.Elem())
	case reflect.Map:
		return b.buildMap(rv)
	case reflect.Slice, reflect.Array:
		s := &YAMLSeq{}
		s.Tag = SeqTag
		for i := 0; i < rv.Len(); i++ {
			n, err := b.build(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			s.Items = append(s.Items, n)
		}
		return s, nil
	case reflect.Struct:
		return b.buildStruct(rv)
	case reflect.String:
		return b.build(rv.String())
	case reflect.Bool:
		return b.build(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return b.build(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return b.build(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return b.build(rv.Float())
	}
	return nil, fmt.Errorf("yamldoc: cannot create a node from a value of type %s", rv.Type())
}

// buildMap converts an (unordered) host map, sorting keys by their string
// rendering so output is deterministic.
func (b *nodeBuilder) buildMap(rv reflect.Value) (Node, error) {
	m := &YAMLMap{}
	m.Tag = MapTag
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		v := rv.MapIndex(k)
		if !b.opts.KeepUndefined && isNilValue(v) {
			continue
		}
		pair, err := b.buildPair(k.Interface(), v.Interface())
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, pair)
	}
	return m, nil
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// buildStruct converts exported struct fields, honouring the same yaml
// field tags the rest of the ecosystem uses: a leading name overrides the
// lowercased field name, "-" skips the field, ",omitempty" drops zero
// values.
func (b *nodeBuilder) buildStruct(rv reflect.Value) (Node, error) {
	m := &YAMLMap{}
	m.Tag = MapTag
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue
		}
		name := strings.ToLower(field.Name)
		omitEmpty := false
		if tag, ok := field.Tag.Lookup("yaml"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, flag := range parts[1:] {
				if flag == "omitempty" {
					omitEmpty = true
				}
			}
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		pair, err := b.buildPair(name, fv.Interface())
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, pair)
	}
	return m, nil
}
