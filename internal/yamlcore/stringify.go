// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Stringifier: emits YAML text from a resolved document. Output parsed
// back under the same schema and version yields an equal tree up to key
// ordering and style; it always ends with a line break. Documents carrying
// errors are refused.

package yamlcore

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// flowDepthLimit is the nesting depth past which block layout switches to
// flow to avoid pathological indentation.
const flowDepthLimit = 100

// StringifyDocument renders a document as YAML text.
func StringifyDocument(d *Document) (string, error) {
	if d.HasErrors() {
		return "", errRefused
	}
	opts := d.Options
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	schema := d.Schema
	if schema == nil {
		var err error
		schema, err = NewSchema(opts.SchemaName, d.effectiveVersion(), opts.CustomTags)
		if err != nil {
			return "", err
		}
	}
	sc := &stringifier{doc: d, opts: opts, schema: schema, emitted: map[Node]bool{}}
	sc.prepareAnchors(d.Contents, map[Node]int{})

	var b strings.Builder
	hasDirectives := false
	if d.Version != "" {
		b.WriteString("%YAML " + d.Version + "\n")
		hasDirectives = true
	}
	for _, tp := range d.TagPrefixes {
		if tp.Handle == "!!" && tp.Prefix == DefaultTagPrefix {
			continue
		}
		b.WriteString("%TAG " + tp.Handle + " " + tp.Prefix + "\n")
		hasDirectives = true
	}

	if d.CommentBefore != "" {
		writeCommentLines(&b, d.CommentBefore, "")
	}

	body, err := sc.stringifyNode(d.Contents, strCtx{})
	if err != nil {
		return "", err
	}
	if body == "" {
		body = opts.Scalar.Null.NullStr
	}
	if hasDirectives || d.HasDirectivesEnd {
		b.WriteString("---")
		if strings.Contains(body, "\n") || len(body) > 40 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(body)
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	if d.Comment != "" {
		writeCommentLines(&b, d.Comment, "")
	}
	return b.String(), nil
}

func writeCommentLines(b *strings.Builder, text, indent string) {
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent)
		b.WriteByte('#')
		if line != "" && !strings.HasPrefix(line, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

type strCtx struct {
	indent      string
	inFlow      bool
	implicitKey bool
	depth       int
}

type stringifier struct {
	doc     *Document
	opts    *Options
	schema  *Schema
	emitted map[Node]bool
}

// prepareAnchors assigns anchor names to every alias source and every node
// that occurs more than once in the tree.
func (sc *stringifier) prepareAnchors(n Node, counts map[Node]int) {
	if n == nil {
		return
	}
	counts[n]++
	if counts[n] > 1 {
		sc.ensureAnchor(n)
		return
	}
	switch v := n.(type) {
	case *Alias:
		sc.ensureAnchor(v.Source)
	case *YAMLSeq:
		for _, it := range v.Items {
			sc.prepareAnchors(it, counts)
		}
	case *YAMLMap:
		for _, p := range v.Items {
			sc.prepareAnchors(p.Key, counts)
			sc.prepareAnchors(p.Value, counts)
		}
	}
}

func (sc *stringifier) ensureAnchor(n Node) {
	if n == nil || sc.doc.Anchors.GetName(n) != "" {
		return
	}
	sc.doc.Anchors.SetAnchor(n, sc.doc.Anchors.NewName(sc.opts.AnchorPrefix))
}

//-----------------------------------------------------------------------------
// Nodes
//-----------------------------------------------------------------------------

func (sc *stringifier) stringifyNode(n Node, ctx strCtx) (string, error) {
	if n == nil {
		return "", nil
	}

	// A node already emitted once turns into an alias here.
	if sc.emitted[n] {
		if name := sc.doc.Anchors.GetName(n); name != "" {
			return "*" + name, nil
		}
	}
	sc.emitted[n] = true

	props := sc.nodeProps(n)
	var body string
	var err error
	switch v := n.(type) {
	case *Alias:
		name := v.Name
		if n := sc.doc.Anchors.GetName(v.Source); n != "" {
			name = n
		}
		return "*" + name, nil
	case *Scalar:
		body, err = sc.stringifyScalar(v, ctx, props != "")
	case *YAMLSeq:
		body, err = sc.stringifySeq(v, ctx)
	case *YAMLMap:
		body, err = sc.stringifyMap(v, ctx)
	default:
		err = fmt.Errorf("yamldoc: cannot stringify node of type %s", n.NodeType())
	}
	if err != nil {
		return "", err
	}
	if props != "" {
		if strings.HasPrefix(body, "\n") {
			return props + body, nil
		}
		if body == "" {
			return props, nil
		}
		return props + " " + body, nil
	}
	return body, nil
}

// nodeProps renders the anchor and explicit tag of a node, when needed.
func (sc *stringifier) nodeProps(n Node) string {
	var parts []string
	if name := sc.doc.Anchors.GetName(n); name != "" {
		parts = append(parts, "&"+name)
	}
	if tag := sc.explicitTag(n); tag != "" {
		parts = append(parts, tag)
	}
	return strings.Join(parts, " ")
}

// explicitTag decides whether a node's tag needs writing out and renders
// its shorthand form.
func (sc *stringifier) explicitTag(n Node) string {
	base := n.Base()
	switch n.(type) {
	case *YAMLMap:
		if base.Tag == "" || base.Tag == MapTag {
			return ""
		}
	case *YAMLSeq:
		if base.Tag == "" || base.Tag == SeqTag {
			return ""
		}
	case *Scalar:
		switch base.Tag {
		case "", StrTag, NullTag, BoolTag, IntTag, FloatTag, MergeTag:
			// Implicitly resolvable: the value text carries the type.
			return ""
		}
	case *Alias:
		return ""
	}
	return tagShorthand(base.Tag)
}

func tagShorthand(tag string) string {
	if strings.HasPrefix(tag, DefaultTagPrefix) {
		return "!!" + tag[len(DefaultTagPrefix):]
	}
	if strings.HasPrefix(tag, "!") {
		return tag
	}
	return "!<" + tag + ">"
}

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

func (sc *stringifier) useFlow(flow bool, items int, ctx strCtx) bool {
	return flow || ctx.inFlow || ctx.implicitKey || items == 0 || ctx.depth > flowDepthLimit
}

func (sc *stringifier) stringifySeq(v *YAMLSeq, ctx strCtx) (string, error) {
	if sc.useFlow(v.Flow, len(v.Items), ctx) {
		return sc.stringifyFlowSeq(v, ctx)
	}
	step := strings.Repeat(" ", sc.opts.Indent)
	var b strings.Builder
	for i, item := range v.Items {
		if i > 0 {
			b.WriteString(ctx.indent)
		}
		if item != nil {
			if cb := item.Base().CommentBefore; cb != "" {
				writeCommentLines(&b, cb, "")
				b.WriteString(ctx.indent)
			}
		}
		b.WriteString("- ")
		ictx := strCtx{indent: ctx.indent + step, depth: ctx.depth + 1}
		text, err := sc.stringifyNode(item, ictx)
		if err != nil {
			return "", err
		}
		if text == "" {
			text = sc.opts.Scalar.Null.NullStr
		}
		b.WriteString(text)
		if item != nil {
			if c := item.Base().Comment; c != "" && !strings.Contains(text, "\n") {
				b.WriteString(" #")
				if !strings.HasPrefix(c, " ") {
					b.WriteByte(' ')
				}
				b.WriteString(c)
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (sc *stringifier) stringifyFlowSeq(v *YAMLSeq, ctx strCtx) (string, error) {
	if len(v.Items) == 0 {
		return "[]", nil
	}
	parts := make([]string, 0, len(v.Items))
	ictx := strCtx{indent: ctx.indent, inFlow: true, depth: ctx.depth + 1}
	for _, item := range v.Items {
		text, err := sc.stringifyNode(item, ictx)
		if err != nil {
			return "", err
		}
		if text == "" {
			text = sc.opts.Scalar.Null.NullStr
		}
		parts = append(parts, text)
	}
	return "[ " + strings.Join(parts, ", ") + " ]", nil
}

func (sc *stringifier) stringifyMap(v *YAMLMap, ctx strCtx) (string, error) {
	if sc.useFlow(v.Flow, len(v.Items), ctx) {
		return sc.stringifyFlowMap(v, ctx)
	}
	step := strings.Repeat(" ", sc.opts.Indent)
	var b strings.Builder
	for i, pair := range v.Items {
		if i > 0 {
			b.WriteString(ctx.indent)
		}
		if pair.Key != nil {
			if cb := pair.Key.Base().CommentBefore; cb != "" {
				writeCommentLines(&b, cb, "")
				b.WriteString(ctx.indent)
			}
		}
		line, err := sc.stringifyPair(pair, ctx, step)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (sc *stringifier) stringifyPair(pair *Pair, ctx strCtx, step string) (string, error) {
	kctx := strCtx{indent: ctx.indent, implicitKey: true, depth: ctx.depth + 1}
	keyText, err := sc.stringifyNode(pair.Key, kctx)
	if err != nil {
		return "", err
	}
	if pair.Merge {
		keyText = "<<"
	}
	_, keyIsScalar := pair.Key.(*Scalar)
	if pair.Key == nil {
		keyIsScalar = true
	}
	_, keyIsAlias := pair.Key.(*Alias)
	simpleOK := keyIsScalar || keyIsAlias || pair.Merge
	if !simpleOK && sc.opts.SimpleKeys {
		return "", fmt.Errorf("yamldoc: with simple keys, collection keys are not allowed")
	}
	if strings.Contains(keyText, "\n") {
		if sc.opts.SimpleKeys {
			return "", fmt.Errorf("yamldoc: with simple keys, all keys must be on a single line")
		}
		return "", fmt.Errorf("yamldoc: multi-line map keys are not supported")
	}

	var b strings.Builder
	b.WriteString(keyText)
	b.WriteByte(':')

	value := pair.Value
	vctx := strCtx{indent: ctx.indent + step, depth: ctx.depth + 1}
	if seq, ok := value.(*YAMLSeq); ok && !seq.Flow && len(seq.Items) > 0 && !sc.opts.IndentSeq {
		// Sequence markers sit at the key's column.
		vctx.indent = ctx.indent
	}
	valText, err := sc.stringifyNode(value, vctx)
	if err != nil {
		return "", err
	}
	if valText == "" {
		valText = sc.opts.Scalar.Null.NullStr
	}

	if sc.blockValueOnNextLine(value, valText) {
		// Block collections open on their own line under the key.
		b.WriteByte('\n')
		b.WriteString(vctx.indent)
		b.WriteString(valText)
	} else {
		b.WriteByte(' ')
		b.WriteString(valText)
		if value != nil {
			if c := value.Base().Comment; c != "" && !strings.Contains(valText, "\n") {
				b.WriteString(" #")
				if !strings.HasPrefix(c, " ") {
					b.WriteByte(' ')
				}
				b.WriteString(c)
			}
		}
	}
	return b.String(), nil
}

// blockValueOnNextLine reports whether a map value must open on the line
// below its key.
func (sc *stringifier) blockValueOnNextLine(value Node, text string) bool {
	if value == nil || strings.HasPrefix(text, "*") {
		return false
	}
	switch v := value.(type) {
	case *YAMLSeq:
		return !v.Flow && len(v.Items) > 0
	case *YAMLMap:
		return !v.Flow && len(v.Items) > 0
	}
	return false
}

func (sc *stringifier) stringifyFlowMap(v *YAMLMap, ctx strCtx) (string, error) {
	if len(v.Items) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(v.Items))
	ictx := strCtx{indent: ctx.indent, inFlow: true, depth: ctx.depth + 1}
	for _, pair := range v.Items {
		keyText, err := sc.stringifyNode(pair.Key, strCtx{
			indent: ctx.indent, inFlow: true, implicitKey: true, depth: ctx.depth + 1,
		})
		if err != nil {
			return "", err
		}
		if pair.Merge {
			keyText = "<<"
		}
		valText, err := sc.stringifyNode(pair.Value, ictx)
		if err != nil {
			return "", err
		}
		if valText == "" {
			valText = sc.opts.Scalar.Null.NullStr
		}
		parts = append(parts, keyText+": "+valText)
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

func (sc *stringifier) stringifyScalar(s *Scalar, ctx strCtx, hasProps bool) (string, error) {
	opts := sc.opts

	// Tag-specific rendering first.
	if s.Tag != "" {
		if res := sc.schema.ForTag(s.Tag, ScalarType); res != nil && res.Stringify != nil {
			if text, ok := res.Stringify(s.Value, opts); ok {
				if s.Tag == BinaryTag {
					return sc.emitBinary(text, ctx)
				}
				return text, nil
			}
		}
	}

	switch v := s.Value.(type) {
	case nil:
		return opts.Scalar.Null.NullStr, nil
	case bool:
		if v {
			return opts.Scalar.Bool.TrueStr, nil
		}
		return opts.Scalar.Bool.FalseStr, nil
	case int:
		return sc.formatInt(int64(v), s.Format), nil
	case int64:
		return sc.formatInt(v, s.Format), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case *big.Int:
		return sc.formatBigInt(v, s.Format), nil
	case float64:
		return formatFloat(v), nil
	case []byte:
		enc := base64Wrap(v, opts.Scalar.Binary.LineWidth)
		return sc.emitBinary(enc, ctx)
	case time.Time:
		return v.UTC().Format("2006-01-02T15:04:05Z"), nil
	case string:
		return sc.stringifyString(s, v, ctx, hasProps)
	default:
		return "", fmt.Errorf("yamldoc: cannot stringify scalar value of type %T", s.Value)
	}
}

func (sc *stringifier) formatInt(v int64, format string) string {
	switch format {
	case "HEX":
		if v >= 0 {
			return "0x" + strconv.FormatInt(v, 16)
		}
	case "OCT":
		if v >= 0 {
			return "0o" + strconv.FormatInt(v, 8)
		}
	case "BIN":
		if v >= 0 {
			return "0b" + strconv.FormatInt(v, 2)
		}
	}
	return strconv.FormatInt(v, 10)
}

func (sc *stringifier) formatBigInt(v *big.Int, format string) string {
	switch format {
	case "HEX":
		if v.Sign() >= 0 {
			return "0x" + v.Text(16)
		}
	case "OCT":
		if v.Sign() >= 0 {
			return "0o" + v.Text(8)
		}
	case "BIN":
		if v.Sign() >= 0 {
			return "0b" + v.Text(2)
		}
	}
	return v.Text(10)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	t := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(t, ".eE") {
		t += ".0"
	}
	return t
}

func base64Wrap(b []byte, width int) string {
	enc := base64.StdEncoding.EncodeToString(b)
	if width <= 0 || len(enc) <= width {
		return enc
	}
	var sb strings.Builder
	for len(enc) > width {
		sb.WriteString(enc[:width])
		sb.WriteByte('\n')
		enc = enc[width:]
	}
	sb.WriteString(enc)
	return sb.String()
}

// emitBinary renders wrapped base64 text per the binary scalar options.
func (sc *stringifier) emitBinary(text string, ctx strCtx) (string, error) {
	if sc.opts.Scalar.Binary.DefaultType == QuoteDouble || ctx.inFlow || ctx.implicitKey {
		return `"` + strings.ReplaceAll(text, "\n", "") + `"`, nil
	}
	return sc.emitBlockLiteral(text+"\n", ctx), nil
}

//-----------------------------------------------------------------------------
// Strings
//-----------------------------------------------------------------------------

func (sc *stringifier) stringifyString(s *Scalar, v string, ctx strCtx, hasProps bool) (string, error) {
	opts := sc.opts
	style := opts.Scalar.Str.DefaultType
	if ctx.implicitKey {
		style = opts.Scalar.Str.DefaultKeyType
	}
	if opts.KeepNodeTypes {
		style = s.Style
	}

	multiline := strings.Contains(v, "\n")
	blockOK := !ctx.inFlow && !ctx.implicitKey

	// Respect the declared style when it round-trips; otherwise pick one
	// that does.
	switch style {
	case BlockLiteral, BlockFolded:
		if blockOK && sc.blockStyleOK(v, ctx) {
			if style == BlockFolded {
				return sc.emitBlockFolded(v, ctx), nil
			}
			return sc.emitBlockLiteral(v, ctx), nil
		}
		return sc.emitDoubleQuoted(v, ctx), nil
	case QuoteDouble:
		return sc.emitDoubleQuoted(v, ctx), nil
	case QuoteSingle:
		if singleQuoteOK(v) && !multiline {
			return sc.emitSingleQuoted(v, ctx), nil
		}
		return sc.emitDoubleQuoted(v, ctx), nil
	}

	// Plain requested.
	if multiline {
		if blockOK && sc.blockStyleOK(v, ctx) {
			if opts.Scalar.Str.DefaultType == BlockFolded {
				return sc.emitBlockFolded(v, ctx), nil
			}
			return sc.emitBlockLiteral(v, ctx), nil
		}
		return sc.emitDoubleQuoted(v, ctx), nil
	}
	if sc.plainOK(v, ctx, hasProps) {
		if ctx.implicitKey {
			return v, nil
		}
		fold := opts.Scalar.Str.Fold
		return foldString(v, ctx.indent, fold.LineWidth, fold.MinContentWidth), nil
	}
	if opts.Scalar.Str.DefaultQuoteSingle && singleQuoteOK(v) {
		return sc.emitSingleQuoted(v, ctx), nil
	}
	if singleQuoteOK(v) {
		return sc.emitSingleQuoted(v, ctx), nil
	}
	return sc.emitDoubleQuoted(v, ctx), nil
}

// plainOK reports whether v can be written as a plain scalar in this
// context without changing its meaning on reparse.
func (sc *stringifier) plainOK(v string, ctx strCtx, hasProps bool) bool {
	if v == "" {
		return false
	}
	if v[0] == ' ' || v[len(v)-1] == ' ' {
		return false
	}
	switch v[0] {
	case '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`', '#', ',', '[', ']', '{', '}':
		return false
	case '-', '?', ':':
		if len(v) == 1 || v[1] == ' ' || v[1] == '\t' {
			return false
		}
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\t' || c == '\n' || c < 0x20 {
			return false
		}
		if c == ':' && (i+1 == len(v) || v[i+1] == ' ') {
			return false
		}
		if c == '#' && i > 0 && v[i-1] == ' ' {
			return false
		}
		if ctx.inFlow && (c == ',' || c == '[' || c == ']' || c == '{' || c == '}' || c == ':') {
			return false
		}
	}
	// Text that resolves to a non-string under the schema must be quoted
	// to stay a string; text resolving to a string may stay plain. A
	// tagged node keeps plain text unambiguous through its tag.
	if hasProps {
		return true
	}
	tag, _, err := sc.schema.ResolveScalar(v, sc.opts)
	return err == nil && tag == StrTag
}

func singleQuoteOK(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] < 0x20 {
			return false
		}
	}
	return true
}

func (sc *stringifier) emitSingleQuoted(v string, ctx strCtx) string {
	text := "'" + strings.ReplaceAll(v, "'", "''") + "'"
	if ctx.implicitKey || ctx.inFlow {
		return text
	}
	fold := sc.opts.Scalar.Str.Fold
	return foldString(text, ctx.indent, fold.LineWidth, fold.MinContentWidth)
}

func (sc *stringifier) emitDoubleQuoted(v string, ctx strCtx) string {
	opts := sc.opts.Scalar.Str.DoubleQuoted
	text := `"` + escapeDouble(v, opts.JSONEncoding) + `"`
	if ctx.implicitKey || ctx.inFlow {
		return text
	}
	if len(text) < opts.MinMultiLineLength {
		return text
	}
	fold := sc.opts.Scalar.Str.Fold
	return foldString(text, ctx.indent, fold.LineWidth, fold.MinContentWidth)
}

func escapeDouble(v string, jsonEncoding bool) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0x00:
			writeEscaped(&b, r, jsonEncoding, `\0`)
		case 0x07:
			writeEscaped(&b, r, jsonEncoding, `\a`)
		case 0x08:
			b.WriteString(`\b`)
		case 0x0b:
			writeEscaped(&b, r, jsonEncoding, `\v`)
		case 0x0c:
			b.WriteString(`\f`)
		case 0x1b:
			writeEscaped(&b, r, jsonEncoding, `\e`)
		case 0x85:
			writeEscaped(&b, r, jsonEncoding, `\N`)
		case 0xa0:
			writeEscaped(&b, r, jsonEncoding, `\_`)
		case 0x2028:
			writeEscaped(&b, r, jsonEncoding, `\L`)
		case 0x2029:
			writeEscaped(&b, r, jsonEncoding, `\P`)
		default:
			if r < 0x20 || r == 0x7f {
				if jsonEncoding {
					fmt.Fprintf(&b, `\u%04x`, r)
				} else {
					fmt.Fprintf(&b, `\x%02x`, r)
				}
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func writeEscaped(b *strings.Builder, r rune, jsonEncoding bool, yamlEsc string) {
	if jsonEncoding {
		fmt.Fprintf(b, `\u%04x`, r)
	} else {
		b.WriteString(yamlEsc)
	}
}

//-----------------------------------------------------------------------------
// Block scalars
//-----------------------------------------------------------------------------

// blockStyleOK combines the value and context checks for block scalar
// notation; a leading space needs an indentation indicator, which is a
// single digit.
func (sc *stringifier) blockStyleOK(v string, ctx strCtx) bool {
	if strings.HasPrefix(v, " ") && sc.blockIndentDigit(ctx) > 9 {
		return false
	}
	return blockScalarOK(v)
}

// blockScalarOK reports whether a string survives block scalar notation:
// no control characters, no trailing space before a break, and at most
// one trailing line break (keep-chomping output does not survive this
// emitter's line assembly).
func blockScalarOK(v string) bool {
	if strings.HasSuffix(v, "\n\n") {
		return false
	}
	for _, line := range strings.Split(v, "\n") {
		if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
			return false
		}
		for i := 0; i < len(line); i++ {
			if line[i] < 0x20 && line[i] != '\t' {
				return false
			}
		}
	}
	return true
}

// blockHeader picks the chomping indicator and, for values opening with a
// space, the explicit indent digit for a block scalar of value v. digit is
// the content indent relative to the parent node's column.
func blockHeader(v string, digit int) string {
	header := ""
	trimmed := strings.TrimRight(v, "\n")
	breaks := len(v) - len(trimmed)
	switch {
	case breaks == 0:
		header = "-"
	case breaks > 1:
		header = "+"
	}
	if strings.HasPrefix(v, " ") {
		header = strconv.Itoa(digit) + header
	}
	return header
}

// blockIndentDigit is the indentation-indicator value for block scalar
// content written at ctx.indent plus one step: relative to the enclosing
// collection's column, which sits one step above ctx.indent except at the
// document root.
func (sc *stringifier) blockIndentDigit(ctx strCtx) int {
	if ctx.indent == "" {
		return sc.opts.Indent
	}
	return 2 * sc.opts.Indent
}

func (sc *stringifier) emitBlockLiteral(v string, ctx strCtx) string {
	step := strings.Repeat(" ", sc.opts.Indent)
	indent := ctx.indent + step
	var b strings.Builder
	b.WriteString("|")
	b.WriteString(blockHeader(v, sc.blockIndentDigit(ctx)))
	content := strings.TrimRight(v, "\n")
	trailing := len(v) - len(content)
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		b.WriteByte('\n')
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	for i := 1; i < trailing; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

func (sc *stringifier) emitBlockFolded(v string, ctx strCtx) string {
	step := strings.Repeat(" ", sc.opts.Indent)
	indent := ctx.indent + step
	fold := sc.opts.Scalar.Str.Fold
	var b strings.Builder
	b.WriteString(">")
	b.WriteString(blockHeader(v, sc.blockIndentDigit(ctx)))
	content := strings.TrimRight(v, "\n")
	trailing := len(v) - len(content)
	valueLines := strings.Split(content, "\n")
	prevMore := false
	for i, line := range valueLines {
		more := line != "" && (line[0] == ' ' || line[0] == '\t')
		if i > 0 && line != "" && !more && !prevMore {
			// A literal break between foldable lines needs a blank line.
			b.WriteByte('\n')
		}
		if line == "" {
			b.WriteByte('\n')
			prevMore = false
			continue
		}
		folded := line
		if !more {
			folded = foldString(line, indent, fold.LineWidth, fold.MinContentWidth)
		}
		for _, phys := range strings.Split(folded, "\n") {
			b.WriteByte('\n')
			b.WriteString(indent)
			b.WriteString(strings.TrimPrefix(phys, indent))
		}
		prevMore = more
	}
	for i := 1; i < trailing; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

