// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doku

import (
	"regexp"
	"strings"
)

// Builtin is the self-contained regex converter. It covers the common
// DokuWiki constructs: headings, emphasis, links, media, code and nowiki
// blocks, lists, tables, rules, and forced line breaks.
type Builtin struct{}

// NewBuiltin returns the builtin regex converter.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

var (
	// <code>, <code bash>, <code bash script.sh>, <file>, <file ini app.ini>
	reBlockOpen  = regexp.MustCompile(`<(code|file)(?:\s+([\w+-]+))?(?:\s+([^>]+))?>`)
	reBlockClose = regexp.MustCompile(`</(?:code|file)>`)

	reNowikiOpen  = regexp.MustCompile(`<nowiki>`)
	reNowikiClose = regexp.MustCompile(`</nowiki>`)

	reHeading  = regexp.MustCompile(`^(={2,6})\s*(.*?)\s*=*\s*$`)
	reRule     = regexp.MustCompile(`^-{4,}\s*$`)
	reListItem = regexp.MustCompile(`^(  +)([*-])\s+(.*)$`)
	reMacro    = regexp.MustCompile(`~~(?:NOTOC|NOCACHE)~~`)
)

// Convert runs the page text through the block-level state machine. It never
// returns an error; the signature matches Converter so engines are
// interchangeable.
func (b *Builtin) Convert(src, pageID string) (string, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	var out []string
	st := &blockState{}
	for _, line := range strings.Split(src, "\n") {
		out = st.line(out, line)
	}
	if st.inBlock {
		// Unterminated code block: close the fence rather than leak it
		// into the rest of the document.
		out = append(out, "```")
	}
	return strings.Join(out, "\n"), nil
}

// blockState tracks the multi-line context: open code/nowiki blocks and the
// current table, which needs a separator row after its header.
type blockState struct {
	inBlock bool
	closeRe *regexp.Regexp
	inTable bool
}

func (st *blockState) line(out []string, line string) []string {
	if st.inBlock {
		if loc := st.closeRe.FindStringIndex(line); loc != nil {
			if before := line[:loc[0]]; strings.TrimRight(before, " \t") != "" {
				out = append(out, strings.TrimRight(before, " \t"))
			}
			out = append(out, "```")
			st.inBlock = false
			if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
				return st.line(out, rest)
			}
			return out
		}
		return append(out, line)
	}

	if !isTableRow(line) {
		st.inTable = false
	}

	// Block open without a close on the same line. Same-line pairs are
	// handled by the inline span pass instead.
	if open := reBlockOpen.FindStringSubmatchIndex(line); open != nil && !reBlockClose.MatchString(line) {
		if before := strings.TrimRight(line[:open[0]], " \t"); before != "" {
			out = st.textLine(out, before)
		}
		lang := group(line, open, 2)
		out = append(out, "```"+lang)
		if rest := line[open[1]:]; strings.TrimSpace(rest) != "" {
			out = append(out, rest)
		}
		st.inBlock = true
		st.closeRe = reBlockClose
		return out
	}
	if open := reNowikiOpen.FindStringIndex(line); open != nil && !reNowikiClose.MatchString(line) {
		if before := strings.TrimRight(line[:open[0]], " \t"); before != "" {
			out = st.textLine(out, before)
		}
		out = append(out, "```")
		if rest := line[open[1]:]; strings.TrimSpace(rest) != "" {
			out = append(out, rest)
		}
		st.inBlock = true
		st.closeRe = reNowikiClose
		return out
	}

	return st.textLine(out, line)
}

// textLine handles a single line outside any block: spans are protected
// first, then line-level forms, then inline substitutions.
func (st *blockState) textLine(out []string, line string) []string {
	line = reMacro.ReplaceAllString(line, "")

	spans := newSpanSet()
	line = spans.protect(line)
	line = replaceMedia(line, spans)
	line = replaceLinks(line, spans)

	switch {
	case reHeading.MatchString(line):
		m := reHeading.FindStringSubmatch(line)
		line = strings.Repeat("#", len(m[1])) + " " + applyInline(m[2])
	case reRule.MatchString(line):
		line = "---"
	case isTableRow(line):
		rows := tableRows(line, st)
		for _, r := range rows {
			out = append(out, spans.restore(applyInline(r)))
		}
		return out
	case reListItem.MatchString(line):
		m := reListItem.FindStringSubmatch(line)
		depth := len(m[1])/2 - 1
		if depth < 0 {
			depth = 0
		}
		marker := "-"
		if m[2] == "-" {
			marker = "1."
		}
		line = strings.Repeat("  ", depth) + marker + " " + applyInline(m[3])
	default:
		line = applyInline(line)
	}

	return append(out, spans.restore(line))
}

// isTableRow reports whether a line is a DokuWiki table row. Rows start with
// '^' (header cells) or '|' (body cells).
func isTableRow(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) < 2 {
		return false
	}
	return t[0] == '^' || t[0] == '|'
}

// tableRows converts one DokuWiki table row to GFM, emitting the separator
// row after the first row of each table.
func tableRows(line string, st *blockState) []string {
	t := strings.TrimSpace(line)
	cells := splitCells(t)
	row := "| " + strings.Join(cells, " | ") + " |"

	if st.inTable {
		return []string{row}
	}
	st.inTable = true

	sep := make([]string, len(cells))
	for i := range sep {
		sep[i] = "---"
	}
	return []string{row, "| " + strings.Join(sep, " | ") + " |"}
}

// splitCells breaks a table row on its '^' and '|' delimiters. Links and
// media have already been lifted into placeholders, so cell content holds no
// literal pipes.
func splitCells(row string) []string {
	var cells []string
	start := -1
	for i := 0; i < len(row); i++ {
		if row[i] == '^' || row[i] == '|' {
			if start >= 0 {
				cells = append(cells, strings.TrimSpace(row[start:i]))
			}
			start = i + 1
		}
	}
	// Trailing text after the last delimiter (malformed row without a
	// closing delimiter) still becomes a cell.
	if start >= 0 && start < len(row) {
		if c := strings.TrimSpace(row[start:]); c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		cells = []string{""}
	}
	return cells
}

// group extracts submatch i of a FindStringSubmatchIndex result, or "".
func group(s string, idx []int, i int) string {
	if 2*i+1 >= len(idx) || idx[2*i] < 0 {
		return ""
	}
	return s[idx[2*i]:idx[2*i+1]]
}
