// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// CST parser: a hand-written recursive-descent scanner over a position
// cursor. Block and flow styles are mutually recursive. The parser never
// backtracks unboundedly; the only ambiguity, plain scalar vs implicit
// mapping key, is settled by peeking for an unquoted ':' before the end of
// the logical line.
//
// Errors do not abort the parse: they are recorded on the current document
// and scanning resumes at the nearest resynchronisation point (next line of
// same or lesser indent, next flow separator, next document marker).

package yamlcore

import (
	"strings"
)

// ParseCST parses a complete source string into a stream of CST documents.
// It never fails; syntax problems are recorded on the documents.
func ParseCST(source string) *CSTStream {
	norm, crs := normalizeBreaks(source)
	p := &cstParser{src: norm, starts: lineStarts(norm)}
	stream := &CSTStream{Source: norm, OrigSource: source, crOffsets: crs}
	if strings.HasPrefix(p.src, "\ufeff") {
		p.pos = len("\ufeff")
	}
	var prev *CSTDocument
	for {
		doc := p.parseDocument(prev)
		stream.Docs = append(stream.Docs, doc)
		prev = doc
		if p.pos >= len(p.src) {
			break
		}
	}
	return stream
}

// normalizeBreaks rewrites CR LF and lone CR to LF, remembering the
// normalised offsets whose original position followed a removed CR.
func normalizeBreaks(src string) (string, []int) {
	if !strings.ContainsRune(src, '\r') {
		return src, nil
	}
	var b strings.Builder
	b.Grow(len(src))
	var crs []int
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\r' {
			crs = append(crs, b.Len())
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			c = '\n'
		}
		b.WriteByte(c)
	}
	return b.String(), crs
}

type cstParser struct {
	src    string
	starts []int
	pos    int
	doc    *CSTDocument
}

//-----------------------------------------------------------------------------
// Cursor helpers
//-----------------------------------------------------------------------------

func (p *cstParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *cstParser) at(i int) byte {
	if i < 0 || i >= len(p.src) {
		return 0
	}
	return p.src[i]
}

func (p *cstParser) atEOF() bool { return p.pos >= len(p.src) }

// colOf returns the 0-indexed column of a byte offset.
func (p *cstParser) colOf(offset int) int {
	m := markAt(p.starts, offset)
	return m.Col - 1
}

// lineStartOf returns the offset at which the line containing offset begins.
func (p *cstParser) lineStartOf(offset int) int {
	m := markAt(p.starts, offset)
	return p.starts[m.Line-1]
}

// lineEndOf returns the offset of the next '\n' at or after offset, or the
// end of the source.
func (p *cstParser) lineEndOf(offset int) int {
	if i := strings.IndexByte(p.src[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(p.src)
}

// consumeLine advances past the rest of the current line including its
// line break.
func (p *cstParser) consumeLine() {
	p.pos = p.lineEndOf(p.pos)
	if p.pos < len(p.src) {
		p.pos++
	}
}

// skipInlineSpace advances over spaces and tabs used as separation.
func (p *cstParser) skipInlineSpace() {
	for {
		c := p.peek()
		if c != ' ' && c != '\t' {
			return
		}
		p.pos++
	}
}

// isSepAfter reports whether position i holds a separation character
// (space, tab, line break) or the end of input.
func (p *cstParser) isSepAfter(i int) bool {
	c := p.at(i)
	return c == 0 || c == ' ' || c == '\t' || c == '\n'
}

// isFlowSepAfter additionally accepts flow indicators as separators.
func (p *cstParser) isFlowSepAfter(i int) bool {
	if p.isSepAfter(i) {
		return true
	}
	switch p.at(i) {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// atDocMarkerAt reports whether a "---" or "..." marker starts at offset i.
// Markers are only recognised in column 1.
func (p *cstParser) atDocMarkerAt(i int, marker string) bool {
	if i != p.lineStartOf(i) {
		return false
	}
	if !strings.HasPrefix(p.src[i:], marker) {
		return false
	}
	return p.isSepAfter(i + len(marker))
}

func (p *cstParser) atAnyDocMarker(i int) bool {
	return p.atDocMarkerAt(i, "---") || p.atDocMarkerAt(i, "...")
}

func (p *cstParser) addError(e *Error) {
	p.doc.Errors = append(p.doc.Errors, e)
}

//-----------------------------------------------------------------------------
// Content lookahead
//-----------------------------------------------------------------------------

// contentProbe is the result of scanning forward for the next content
// line.
type contentProbe struct {
	pos      int  // offset of the first content character, -1 at EOF/marker
	col      int  // 0-indexed column of pos
	hasTab   bool // the indent span contained a tab
	tabPos   int  // offset of the offending tab
	comments []string
}

// peekContent scans forward from a line start, skipping blank lines and
// full-line comments, and reports where the next content character sits.
// It does not move the cursor. When emitTab is set, a tab found in an
// indent span is reported as a semantic error; scanning stops at the tab
// line either way.
func (p *cstParser) peekContent(from int, emitTab bool) contentProbe {
	probe := contentProbe{pos: -1}
	ls := from
	for ls < len(p.src) {
		i := ls
		tab := -1
		for {
			c := p.at(i)
			if c == ' ' {
				i++
				continue
			}
			if c == '\t' {
				if tab < 0 {
					tab = i
				}
				i++
				continue
			}
			break
		}
		c := p.at(i)
		switch {
		case c == 0:
			return probe
		case c == '\n':
			ls = i + 1
			continue
		case c == '#':
			end := p.lineEndOf(i)
			probe.comments = append(probe.comments, p.src[i+1:end])
			ls = end + 1
			continue
		}
		if tab >= 0 && tab < i {
			// Tab inside the indentation span.
			probe.hasTab = true
			probe.tabPos = tab
			if emitTab {
				p.addError(semanticError(nil, Range{Start: tab, End: tab + 1},
					"Tabs are not allowed as indentation"))
			}
			probe.pos = i
			probe.col = p.colOf(i)
			return probe
		}
		if p.atAnyDocMarker(ls) {
			return probe
		}
		probe.pos = i
		probe.col = i - ls
		return probe
	}
	return probe
}

//-----------------------------------------------------------------------------
// Documents
//-----------------------------------------------------------------------------

func (p *cstParser) parseDocument(prev *CSTDocument) *CSTDocument {
	doc := &CSTDocument{}
	doc.Range.Start = p.pos
	p.doc = doc
	trailing := prev != nil && !prev.HasDocEnd && !p.atDocMarkerAt(p.pos, "---")

	// START: blank lines and comments before any structure.
	p.skipBlankAndComments(&doc.CommentBefore)

	// DIRECTIVES.
	for !p.atEOF() && p.peek() == '%' && p.pos == p.lineStartOf(p.pos) {
		doc.Directives = append(doc.Directives, p.parseDirective())
		p.skipBlankAndComments(&doc.CommentBefore)
	}
	if p.atDocMarkerAt(p.pos, "---") {
		doc.HasDirectivesEnd = true
		doc.DirectivesEndPos = Range{Start: p.pos, End: p.pos + 3}
		p.pos += 3
		p.skipInlineSpace()
		if p.peek() == '\n' {
			p.pos++
		}
		trailing = false
		p.skipBlankAndComments(&doc.CommentBefore)
	}

	// CONTENT.
	if !p.atEOF() && !p.atDocMarkerAt(p.pos, "...") && !p.atDocMarkerAt(p.pos, "---") {
		ctx := CSTContext{ParentIndent: -1, AtLineStart: true}
		doc.Contents = p.parseNode(ctx)
	}
	if trailing && doc.Contents != nil {
		p.addError(semanticError(doc.Contents, doc.Contents.Range,
			"Document contains trailing content"))
	}

	// END.
	var after []string
	p.skipBlankAndComments(&after)
	if len(after) > 0 {
		if doc.Contents != nil {
			doc.Comment = strings.Join(after, "\n")
		} else {
			doc.CommentBefore = append(doc.CommentBefore, after...)
		}
	}
	if p.atDocMarkerAt(p.pos, "...") {
		doc.HasDocEnd = true
		doc.DocEndPos = Range{Start: p.pos, End: p.pos + 3}
		p.pos += 3
		p.skipInlineSpace()
		if p.peek() == '#' {
			end := p.lineEndOf(p.pos)
			doc.Comment = strings.TrimSpace(p.src[p.pos+1 : end])
			p.pos = end
		}
		if p.peek() == '\n' {
			p.pos++
		}
	}
	doc.Range.End = p.pos
	return doc
}

// skipBlankAndComments consumes blank lines and full-line comments,
// appending comment text to dst.
func (p *cstParser) skipBlankAndComments(dst *[]string) {
	for !p.atEOF() {
		save := p.pos
		p.skipInlineSpace()
		switch p.peek() {
		case '\n':
			p.pos++
		case '#':
			end := p.lineEndOf(p.pos)
			*dst = append(*dst, p.src[p.pos+1:end])
			p.pos = end
			if p.pos < len(p.src) {
				p.pos++
			}
		default:
			p.pos = save
			return
		}
	}
}

func (p *cstParser) parseDirective() *CSTNode {
	n := &CSTNode{Type: DirectiveType}
	n.Range.Start = p.pos
	p.pos++ // '%'
	end := p.lineEndOf(p.pos)
	text := p.src[p.pos:end]
	if i := strings.IndexByte(text, '#'); i >= 0 {
		n.Comment = strings.TrimSpace(text[i+1:])
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) > 0 {
		n.Name = fields[0]
		n.Parameters = fields[1:]
	}
	n.Raw = strings.TrimRight(text, " \t")
	p.pos = end
	if p.pos < len(p.src) {
		p.pos++
	}
	n.Range.End = end
	if n.Name != "YAML" && n.Name != "TAG" {
		p.addError(warning(n, n.Range,
			"YAML only supports %TAG and %YAML directives, and not %"+n.Name))
	}
	return n
}

//-----------------------------------------------------------------------------
// Node properties
//-----------------------------------------------------------------------------

type nodeProps struct {
	anchor      string
	anchorRng   Range
	tagHandle   string
	tagSuffix   string
	tagVerbatim string
	tagRng      Range
	comments    []string
	start       int // offset of the first property, -1 when none
}

func (pr *nodeProps) any() bool {
	return pr.anchor != "" || pr.tagHandle != "" || pr.tagVerbatim != "" || pr.start >= 0
}

func (pr *nodeProps) apply(n *CSTNode) {
	if n == nil {
		return
	}
	n.Anchor = pr.anchor
	n.AnchorRange = pr.anchorRng
	n.TagHandle = pr.tagHandle
	n.TagSuffix = pr.tagSuffix
	n.TagVerbatim = pr.tagVerbatim
	n.TagRange = pr.tagRng
	n.CommentBefore = append(pr.comments, n.CommentBefore...)
	if pr.start >= 0 && pr.start < n.Range.Start {
		n.Range.Start = pr.start
	}
}

// parseProps consumes anchors, tags and comments ahead of a value. It
// returns ok=false when no value follows on an acceptable line, leaving the
// cursor before the unconsumed line break.
func (p *cstParser) parseProps(ctx CSTContext) (nodeProps, bool) {
	props := nodeProps{start: -1}
	for {
		p.skipInlineSpace()
		c := p.peek()
		switch {
		case c == '&':
			if props.start < 0 {
				props.start = p.pos
			}
			start := p.pos
			p.pos++
			name := p.scanAnchorName()
			if name == "" {
				p.addError(syntaxError(nil, Range{Start: start, End: p.pos + 1},
					"Anchor indicator without anchor name"))
			}
			if props.anchor != "" {
				p.addError(semanticError(nil, Range{Start: start, End: p.pos},
					"A node can have at most one anchor"))
			}
			props.anchor = name
			props.anchorRng = Range{Start: start, End: p.pos}
		case c == '!':
			if props.start < 0 {
				props.start = p.pos
			}
			start := p.pos
			handle, suffix, verbatim := p.scanTag()
			if props.tagHandle != "" || props.tagVerbatim != "" {
				p.addError(semanticError(nil, Range{Start: start, End: p.pos},
					"A node can have at most one tag"))
			}
			props.tagHandle, props.tagSuffix, props.tagVerbatim = handle, suffix, verbatim
			props.tagRng = Range{Start: start, End: p.pos}
		case c == '#':
			end := p.lineEndOf(p.pos)
			props.comments = append(props.comments, p.src[p.pos+1:end])
			p.pos = end
		case c == '\n':
			probe := p.peekContent(p.pos+1, true)
			if probe.hasTab || probe.pos < 0 {
				return props, false
			}
			ok := probe.col > ctx.ParentIndent || ctx.InFlow
			if !ok && ctx.seqAtParent(probe.col) && p.at(probe.pos) == '-' && p.isSepAfter(probe.pos+1) {
				ok = true
			}
			if !ok {
				return props, false
			}
			props.comments = append(props.comments, probe.comments...)
			p.pos = probe.pos
		case c == 0:
			return props, false
		default:
			return props, true
		}
	}
}

// seqAtParent reports whether a sequence indicator is acceptable at the
// parent's own column, which block mappings allow for their values.
func (ctx CSTContext) seqAtParent(col int) bool {
	return ctx.allowSeqAtParent && col == ctx.ParentIndent
}

func (p *cstParser) scanAnchorName() string {
	start := p.pos
	for !p.atEOF() {
		c := p.peek()
		if c == ' ' || c == '\t' || c == '\n' || c == ',' ||
			c == '[' || c == ']' || c == '{' || c == '}' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// scanTag consumes one tag property starting at '!'.
func (p *cstParser) scanTag() (handle, suffix, verbatim string) {
	p.pos++ // '!'
	if p.peek() == '<' {
		p.pos++
		start := p.pos
		for !p.atEOF() && p.peek() != '>' && p.peek() != '\n' {
			p.pos++
		}
		verbatim = p.src[start:p.pos]
		if p.peek() == '>' {
			p.pos++
		} else {
			p.addError(semanticError(nil, Range{Start: start - 2, End: p.pos},
				"Verbatim tags must end with a >"))
		}
		return "", "", verbatim
	}
	handle = "!"
	if p.peek() == '!' {
		handle = "!!"
		p.pos++
	}
	start := p.pos
	end := start
	for !p.atEOF() {
		c := p.peek()
		if c == ' ' || c == '\t' || c == '\n' || c == ',' ||
			c == '[' || c == ']' || c == '{' || c == '}' {
			break
		}
		if c == '!' {
			// A second '!' closes a named handle: !name!suffix
			if handle == "!" {
				handle = "!" + p.src[start:p.pos] + "!"
				p.pos++
				start = p.pos
				end = start
				continue
			}
		}
		p.pos++
		end = p.pos
	}
	return handle, p.src[start:end], ""
}

//-----------------------------------------------------------------------------
// Values
//-----------------------------------------------------------------------------

// parseNode parses one value node, including its properties, at the
// current cursor position.
func (p *cstParser) parseNode(ctx CSTContext) *CSTNode {
	props, ok := p.parseProps(ctx)
	if !ok {
		if props.any() {
			n := p.emptyScalar(ctx)
			props.apply(n)
			return n
		}
		return nil
	}
	if p.atAnyDocMarker(p.pos) {
		if props.any() {
			n := p.emptyScalar(ctx)
			props.apply(n)
			return n
		}
		return nil
	}

	startCol := p.colOf(p.pos)
	c := p.peek()
	var n *CSTNode
	switch {
	case c == '{':
		n = p.parseFlow(ctx, FlowMapType)
	case c == '[':
		n = p.parseFlow(ctx, FlowSeqType)
	case c == '*':
		n = p.parseAlias(ctx)
	case c == '"':
		n = p.parseQuoted(ctx, true)
	case c == '\'':
		n = p.parseQuoted(ctx, false)
	case (c == '|' || c == '>') && !ctx.InFlow:
		n = p.parseBlockScalar(ctx, c == '>')
		props.apply(n)
		return n
	case c == '-' && !ctx.InFlow && p.isSepAfter(p.pos+1):
		n = p.parseBlockSeq(ctx, startCol)
		props.apply(n)
		return n
	case c == '?' && !ctx.InFlow && p.isSepAfter(p.pos+1):
		n = p.parseBlockMap(ctx, startCol, nil)
		props.apply(n)
		return n
	default:
		n = p.parsePlainOneLine(ctx)
	}

	// Implicit-key check: a same-line ':' after an inline value turns it
	// into the first key of a block mapping.
	if !ctx.InFlow && n != nil {
		save := p.pos
		p.skipInlineSpace()
		if p.peek() == ':' && p.isSepAfter(p.pos+1) {
			if props.start >= 0 && p.lineStartOf(props.start) != p.lineStartOf(n.Range.Start) {
				// Properties on a line of their own belong to the
				// mapping, not to its first key.
				m := p.parseBlockMap(ctx, startCol, n)
				props.apply(m)
				return m
			}
			props.apply(n)
			return p.parseBlockMap(ctx, startCol, n)
		}
		p.pos = save
	}

	if n != nil && n.Type == PlainType {
		p.extendPlain(n, ctx)
	}
	props.apply(n)
	return n
}

func (p *cstParser) emptyScalar(ctx CSTContext) *CSTNode {
	return &CSTNode{
		Type:    PlainType,
		Range:   Range{Start: p.pos, End: p.pos},
		Context: ctx,
	}
}

func (p *cstParser) parseAlias(ctx CSTContext) *CSTNode {
	n := &CSTNode{Type: AliasValType, Context: ctx}
	n.Range.Start = p.pos
	p.pos++ // '*'
	n.Value = p.scanAnchorName()
	n.Range.End = p.pos
	n.Raw = p.src[n.Range.Start:n.Range.End]
	if n.Value == "" {
		p.addError(syntaxError(n, n.Range, "Alias indicator without alias name"))
	}
	return n
}

//-----------------------------------------------------------------------------
// Block collections
//-----------------------------------------------------------------------------

func (p *cstParser) parseBlockSeq(ctx CSTContext, col int) *CSTNode {
	n := &CSTNode{Type: BlockSeqType, Context: ctx}
	n.Range.Start = p.pos
	var pendingComments []string
	for {
		if p.peek() != '-' || !p.isSepAfter(p.pos+1) {
			break
		}
		item := &CSTItem{Indent: col}
		item.Range.Start = p.pos
		p.pos++ // '-'
		if p.peek() == ' ' || p.peek() == '\t' {
			p.skipInlineSpace()
		}
		vctx := CSTContext{ParentIndent: col, AtLineStart: false, InCollection: true}
		item.Value = p.parseNode(vctx)
		if item.Value != nil {
			item.Value.CommentBefore = append(pendingComments, item.Value.CommentBefore...)
			pendingComments = nil
			item.Range.End = item.Value.Range.End
		} else {
			item.Range.End = p.pos
		}
		n.Items = append(n.Items, item)
		n.Range.End = item.Range.End

		p.attachTrailingComment(item)
		if !p.advanceToItem(col, &pendingComments, BlockSeqType, n) {
			break
		}
	}
	if len(n.Items) > 0 {
		n.Range.End = n.Items[len(n.Items)-1].Range.End
	} else {
		n.Range.End = p.pos
	}
	return n
}

// parseBlockMap parses a block mapping whose items share column col.
// firstKey, when non-nil, is an already-parsed implicit key whose ':' is
// the next content character.
func (p *cstParser) parseBlockMap(ctx CSTContext, col int, firstKey *CSTNode) *CSTNode {
	n := &CSTNode{Type: BlockMapType, Context: ctx}
	if firstKey != nil {
		n.Range.Start = firstKey.Range.Start
	} else {
		n.Range.Start = p.pos
	}
	key := firstKey
	explicit := false
	var pendingComments []string
	for {
		if key == nil {
			// Cursor is at an item start in column col.
			if p.peek() == '?' && p.isSepAfter(p.pos+1) {
				explicit = true
				p.pos++
				p.skipInlineSpace()
				kctx := CSTContext{ParentIndent: col, InCollection: true}
				key = p.parseNode(kctx)
			} else {
				key = p.parseInlineKey(col)
			}
			if key != nil {
				key.CommentBefore = append(pendingComments, key.CommentBefore...)
				pendingComments = nil
			}
		}

		item := &CSTItem{Indent: col, ExplicitKey: explicit, Key: key}
		if key != nil {
			item.Range.Start = key.Range.Start
		} else {
			item.Range.Start = p.pos
		}
		explicit = false

		p.skipInlineSpace()
		if explicitSep := p.findValueColon(col, item.ExplicitKey); explicitSep {
			p.pos++ // ':'
			vctx := CSTContext{
				ParentIndent:     col,
				InCollection:     true,
				allowSeqAtParent: true,
			}
			if p.peek() == ' ' || p.peek() == '\t' {
				p.skipInlineSpace()
			}
			item.Value = p.parseNode(vctx)
		} else {
			if key != nil {
				p.addError(semanticError(key, key.Range,
					"Implicit map keys need to be followed by map values"))
			}
			item.Value = nil
		}
		if item.Value != nil {
			item.Range.End = item.Value.Range.End
		} else if key != nil {
			item.Range.End = key.Range.End
		} else {
			item.Range.End = p.pos
		}
		n.Items = append(n.Items, item)
		key = nil

		p.attachTrailingComment(item)
		if !p.advanceToItem(col, &pendingComments, BlockMapType, n) {
			break
		}
	}
	if len(n.Items) > 0 {
		n.Range.End = n.Items[len(n.Items)-1].Range.End
	} else {
		n.Range.End = p.pos
	}
	return n
}

// findValueColon reports whether the cursor sits on the ':' separating a
// key from its value. For explicit '?' keys the ':' may open a later line
// at the same column.
func (p *cstParser) findValueColon(col int, explicitKey bool) bool {
	if p.peek() == ':' && p.isSepAfter(p.pos+1) {
		return true
	}
	if !explicitKey {
		return false
	}
	probe := p.peekContent(p.lineEndOf(p.pos)+1, false)
	if probe.pos < 0 || probe.col != col || p.at(probe.pos) != ':' || !p.isSepAfter(probe.pos+1) {
		return false
	}
	p.pos = probe.pos
	return true
}

// parseInlineKey parses a single-line key candidate: a plain token, quoted
// scalar, alias or flow collection.
func (p *cstParser) parseInlineKey(col int) *CSTNode {
	ctx := CSTContext{ParentIndent: col, AtLineStart: true, InCollection: true}
	props, ok := p.parseProps(ctx)
	if !ok {
		if props.any() {
			n := p.emptyScalar(ctx)
			props.apply(n)
			return n
		}
		return nil
	}
	var n *CSTNode
	switch c := p.peek(); {
	case c == '{':
		n = p.parseFlow(ctx, FlowMapType)
	case c == '[':
		n = p.parseFlow(ctx, FlowSeqType)
	case c == '*':
		n = p.parseAlias(ctx)
	case c == '"':
		n = p.parseQuoted(ctx, true)
	case c == '\'':
		n = p.parseQuoted(ctx, false)
	case c == ':' && p.isSepAfter(p.pos+1):
		// Empty key: ": value".
		n = nil
	default:
		n = p.parsePlainOneLine(ctx)
	}
	props.apply(n)
	return n
}

// attachTrailingComment consumes an end-of-line comment after an item and
// attaches it to the item's value (or key when there is no value).
func (p *cstParser) attachTrailingComment(item *CSTItem) {
	save := p.pos
	p.skipInlineSpace()
	if p.peek() != '#' {
		p.pos = save
		return
	}
	end := p.lineEndOf(p.pos)
	text := p.src[p.pos+1 : end]
	p.pos = end
	switch {
	case item.Value != nil && item.Value.Comment == "":
		item.Value.Comment = text
	case item.Value == nil && item.Key != nil && item.Key.Comment == "":
		item.Key.Comment = text
	}
}

// advanceToItem moves the cursor to the next item of a block collection at
// column col. It returns false when the collection ends. Items at a deeper
// column are reported and skipped; tab-indented lines are reported and
// skipped as well.
func (p *cstParser) advanceToItem(col int, pendingComments *[]string, typ NodeType, n *CSTNode) bool {
	for {
		// Move to the start of the next line unless something already has.
		if p.pos != p.lineStartOf(p.pos) {
			save := p.pos
			p.skipInlineSpace()
			if p.peek() == '\n' {
				p.pos++
			} else if p.atEOF() {
				return false
			} else {
				p.pos = save
				p.consumeLine()
			}
		}
		probe := p.peekContent(p.pos, true)
		if probe.hasTab {
			p.pos = probe.pos
			p.consumeLine()
			continue
		}
		if probe.pos < 0 {
			return false
		}
		if probe.col < col {
			return false
		}
		if probe.col > col {
			p.addError(semanticError(n, Range{Start: probe.pos, End: p.lineEndOf(probe.pos)},
				"All collection items must start at the same column"))
			p.pos = probe.pos
			p.consumeLine()
			continue
		}
		// A different construct at the same column ends the collection.
		c := p.at(probe.pos)
		if typ == BlockSeqType && (c != '-' || !p.isSepAfter(probe.pos+1)) {
			return false
		}
		if typ == BlockMapType && c == '-' && p.isSepAfter(probe.pos+1) {
			return false
		}
		*pendingComments = append(*pendingComments, probe.comments...)
		p.pos = probe.pos
		return true
	}
}

//-----------------------------------------------------------------------------
// Flow collections
//-----------------------------------------------------------------------------

func (p *cstParser) parseFlow(ctx CSTContext, typ NodeType) *CSTNode {
	n := &CSTNode{Type: typ, Context: ctx}
	n.Range.Start = p.pos
	close := byte(']')
	name := "flow sequence"
	if typ == FlowMapType {
		close = '}'
		name = "flow map"
	}
	p.pos++ // '{' or '['
	expectItem := true
	var comments []string
	for {
		p.skipFlowSpace(&comments)
		c := p.peek()
		if c == 0 || p.atAnyDocMarker(p.pos) {
			p.addError(semanticError(n, Range{Start: p.pos, End: p.pos + 1},
				"Expected "+name+" to end with "+string(close)))
			break
		}
		if c == close {
			p.pos++
			break
		}
		if c == ',' {
			if expectItem {
				p.addError(syntaxError(n, Range{Start: p.pos, End: p.pos + 1},
					"Unexpected , in "+name))
			}
			p.pos++
			expectItem = true
			continue
		}
		if !expectItem {
			p.addError(syntaxError(n, Range{Start: p.pos, End: p.pos + 1},
				"Missing , between "+name+" items"))
		}

		item := &CSTItem{}
		item.Range.Start = p.pos
		if c == '?' && p.isFlowSepAfter(p.pos+1) {
			item.ExplicitKey = true
			p.pos++
			p.skipFlowSpace(&comments)
		}
		ictx := CSTContext{ParentIndent: ctx.ParentIndent, InFlow: true, InCollection: true}
		first := p.parseNode(ictx)
		if first != nil {
			first.CommentBefore = append(comments, first.CommentBefore...)
			comments = nil
		}
		p.skipFlowSpace(&comments)
		if p.peek() == ':' && (p.isFlowSepAfter(p.pos+1) || first == nil ||
			first.Type == QuoteDoubleType || first.Type == QuoteSingleType) {
			p.pos++
			p.skipFlowSpace(&comments)
			item.Key = first
			if c := p.peek(); c != ',' && c != close && c != 0 {
				item.Value = p.parseNode(ictx)
			}
		} else if item.ExplicitKey {
			item.Key = first
		} else {
			item.Value = first
		}
		if item.Value != nil {
			item.Range.End = item.Value.Range.End
		} else if item.Key != nil {
			item.Range.End = item.Key.Range.End
		} else {
			item.Range.End = p.pos
		}
		n.Items = append(n.Items, item)
		expectItem = false
	}
	n.Range.End = p.pos
	n.Raw = p.src[n.Range.Start:n.Range.End]
	return n
}

// skipFlowSpace advances over spaces, tabs, line breaks and comments, all
// of which separate flow tokens.
func (p *cstParser) skipFlowSpace(comments *[]string) {
	for {
		switch p.peek() {
		case ' ', '\t', '\n':
			p.pos++
		case '#':
			end := p.lineEndOf(p.pos)
			*comments = append(*comments, p.src[p.pos+1:end])
			p.pos = end
		default:
			return
		}
	}
}
