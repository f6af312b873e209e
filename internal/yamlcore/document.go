// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Document: the owner of a resolved node tree, its anchors, diagnostics,
// directives and schema. Documents are created by the resolver or built by
// hand; the schema binds eagerly through the options or lazily through
// SetSchema.

package yamlcore

import (
	"errors"
	"fmt"
	"strconv"
)

// TagPrefix maps a tag handle declared by %TAG to its URI prefix.
type TagPrefix struct {
	Handle string
	Prefix string
}

// Document owns one resolved YAML document.
type Document struct {
	Contents Node
	Errors   Errors
	Warnings Errors

	// Anchors indexes anchored nodes by name, bidirectionally.
	Anchors AnchorTable

	TagPrefixes      []TagPrefix
	Version          string
	HasDirectivesEnd bool

	CommentBefore string
	Comment       string

	Schema  *Schema
	Options *Options

	// src is the parsed source, retained for range projections.
	src string
}

// NewDocument creates an empty document bound to the given options'
// schema.
func NewDocument(opts *Options) (*Document, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	schema, err := NewSchema(opts.SchemaName, opts.Version, opts.CustomTags)
	if err != nil {
		return nil, err
	}
	return &Document{
		Schema:  schema,
		Options: opts,
		Anchors: newAnchorTable(),
	}, nil
}

// SetSchema rebinds the document to a named schema, keeping the current
// version and custom tags.
func (d *Document) SetSchema(name string) error {
	opts := d.Options
	if opts == nil {
		o := DefaultOptions
		opts = &o
		d.Options = opts
	}
	schema, err := NewSchema(name, d.effectiveVersion(), opts.CustomTags)
	if err != nil {
		return err
	}
	opts.SchemaName = name
	d.Schema = schema
	return nil
}

func (d *Document) effectiveVersion() string {
	if d.Version != "" {
		return d.Version
	}
	if d.Options != nil {
		return d.Options.Version
	}
	return DefaultOptions.Version
}

// HasErrors reports whether any fatal diagnostic was collected.
func (d *Document) HasErrors() bool { return len(d.Errors) > 0 }

// FirstError returns the first fatal diagnostic, or nil.
func (d *Document) FirstError() error {
	if len(d.Errors) == 0 {
		return nil
	}
	return d.Errors[0]
}

// String stringifies the document; a document carrying errors is refused
// and renders as an empty string.
func (d *Document) String() string {
	s, err := StringifyDocument(d)
	if err != nil {
		return ""
	}
	return s
}

// errRefused is the error returned when stringifying a broken document.
var errRefused = errors.New("yamldoc: cannot stringify a document with errors")

//-----------------------------------------------------------------------------
// Anchor table
//-----------------------------------------------------------------------------

// AnchorTable is the bidirectional name <-> node index of a document's
// anchors. Nodes are held weakly with respect to the tree: removing a node
// from its collection should be paired with RemoveNode.
type AnchorTable struct {
	byName map[string]Node
	byNode map[Node]string
}

func newAnchorTable() AnchorTable {
	return AnchorTable{
		byName: make(map[string]Node),
		byNode: make(map[Node]string),
	}
}

func (a *AnchorTable) init() {
	if a.byName == nil {
		a.byName = make(map[string]Node)
		a.byNode = make(map[Node]string)
	}
}

// SetAnchor names a node. A later declaration of the same name overrides
// the earlier node for subsequent lookups. An empty name removes the
// node's anchor.
func (a *AnchorTable) SetAnchor(n Node, name string) {
	a.init()
	if name == "" {
		a.RemoveNode(n)
		return
	}
	if old, ok := a.byName[name]; ok && old != n {
		delete(a.byNode, old)
	}
	if oldName, ok := a.byNode[n]; ok && oldName != name {
		delete(a.byName, oldName)
	}
	a.byName[name] = n
	a.byNode[n] = name
}

// GetNode returns the node currently anchored under name, or nil.
func (a *AnchorTable) GetNode(name string) Node {
	return a.byName[name]
}

// GetName returns the anchor name of a node, or "".
func (a *AnchorTable) GetName(n Node) string {
	return a.byNode[n]
}

// Names returns all anchor names in no particular order.
func (a *AnchorTable) Names() []string {
	names := make([]string, 0, len(a.byName))
	for name := range a.byName {
		names = append(names, name)
	}
	return names
}

// RemoveNode drops a node from the index.
func (a *AnchorTable) RemoveNode(n Node) {
	if name, ok := a.byNode[n]; ok {
		delete(a.byName, name)
		delete(a.byNode, n)
	}
}

// NewName returns prefix plus the smallest unused integer suffix.
func (a *AnchorTable) NewName(prefix string) string {
	for i := 1; ; i++ {
		name := prefix + strconv.Itoa(i)
		if _, taken := a.byName[name]; !taken {
			return name
		}
	}
}

// CreateAlias anchors the target node under the document's anchor prefix
// (unless already anchored) and returns an alias to it.
func (d *Document) CreateAlias(target Node, name string) (*Alias, error) {
	if target == nil {
		return nil, errors.New("yamldoc: cannot alias a nil node")
	}
	if name == "" {
		name = d.Anchors.GetName(target)
	}
	if name == "" {
		prefix := DefaultOptions.AnchorPrefix
		if d.Options != nil {
			prefix = d.Options.AnchorPrefix
		}
		name = d.Anchors.NewName(prefix)
	}
	if cur := d.Anchors.GetNode(name); cur != nil && cur != target {
		return nil, fmt.Errorf("yamldoc: anchor %q already names another node", name)
	}
	d.Anchors.SetAnchor(target, name)
	return &Alias{Name: name, Source: target}, nil
}
