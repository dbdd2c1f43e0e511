// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doku

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/dokuport/internal/namespace"
)

var (
	reInlineNowiki = regexp.MustCompile(`<nowiki>(.*?)</nowiki>`)
	reInlineCode   = regexp.MustCompile(`<(?:code|file)(?:\s+[^>]*)?>(.*?)</(?:code|file)>`)
	rePercentEsc   = regexp.MustCompile(`%%(.*?)%%`)
	reMonospace    = regexp.MustCompile(`''(.+?)''`)

	reMedia = regexp.MustCompile(`\{\{\s*([^}|]+?)\s*(?:\|([^}]*))?\}\}`)
	reLink  = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)

	reItalic    = regexp.MustCompile(`//([^/]+)//`)
	reUnderline = regexp.MustCompile(`__(.+?)__`)
	reDeleted   = regexp.MustCompile(`<del>(.*?)</del>`)
	reLineBreak = regexp.MustCompile(`\\\\(\s+|$)`)
)

// spanSet stashes rendered spans behind NUL-delimited placeholders so later
// substitutions cannot reach into code spans, URLs, or link labels.
type spanSet struct {
	spans []string
}

func newSpanSet() *spanSet {
	return &spanSet{}
}

func (s *spanSet) add(rendered string) string {
	s.spans = append(s.spans, rendered)
	return "\x00" + strconv.Itoa(len(s.spans)-1) + "\x00"
}

// protect converts verbatim spans (nowiki, inline code/file tags, percent
// escapes, monospace quotes) to their Markdown form and hides them.
func (s *spanSet) protect(line string) string {
	line = reInlineNowiki.ReplaceAllStringFunc(line, func(m string) string {
		return s.add("`" + reInlineNowiki.FindStringSubmatch(m)[1] + "`")
	})
	line = reInlineCode.ReplaceAllStringFunc(line, func(m string) string {
		return s.add("`" + reInlineCode.FindStringSubmatch(m)[1] + "`")
	})
	line = rePercentEsc.ReplaceAllStringFunc(line, func(m string) string {
		return s.add(rePercentEsc.FindStringSubmatch(m)[1])
	})
	line = reMonospace.ReplaceAllStringFunc(line, func(m string) string {
		return s.add("`" + reMonospace.FindStringSubmatch(m)[1] + "`")
	})
	return line
}

// restore substitutes the stashed spans back into the transformed line.
func (s *spanSet) restore(line string) string {
	for i := len(s.spans) - 1; i >= 0; i-- {
		line = strings.ReplaceAll(line, "\x00"+strconv.Itoa(i)+"\x00", s.spans[i])
	}
	return line
}

// replaceMedia rewrites {{ns:image.png?200|alt}} embeds to Markdown image
// syntax. Internal targets point into the copied _media tree; external URLs
// pass through. Alignment padding around the target is dropped.
func replaceMedia(line string, spans *spanSet) string {
	return reMedia.ReplaceAllStringFunc(line, func(m string) string {
		g := reMedia.FindStringSubmatch(m)
		target, alt := strings.TrimSpace(g[1]), strings.TrimSpace(g[2])

		if namespace.IsExternal(target) {
			return spans.add("![" + alt + "](" + namespace.StripQuery(target) + ")")
		}
		return spans.add("![" + alt + "](" + namespace.MediaFile(target) + ")")
	})
}

// replaceLinks rewrites [[target|label]] links. Internal targets become
// root-relative Markdown paths with section anchors preserved; external URLs
// keep their target untouched.
func replaceLinks(line string, spans *spanSet) string {
	return reLink.ReplaceAllStringFunc(line, func(m string) string {
		g := reLink.FindStringSubmatch(m)
		target := strings.TrimSpace(g[1])
		label := strings.TrimSpace(g[2])
		if label == "" {
			label = target
		}

		if namespace.IsExternal(target) {
			return spans.add("[" + label + "](" + target + ")")
		}

		page, anchor := namespace.SplitAnchor(target)
		var dest string
		switch {
		case page == "":
			dest = "#" + anchor
		case anchor != "":
			dest = namespace.PageFile(page) + "#" + anchor
		default:
			dest = namespace.PageFile(page)
		}
		return spans.add("[" + label + "](" + dest + ")")
	})
}

// applyInline runs the emphasis and line-break substitutions. Spans and link
// targets are already hidden behind placeholders at this point.
func applyInline(line string) string {
	line = reItalic.ReplaceAllString(line, "*$1*")
	line = reUnderline.ReplaceAllString(line, "_$1_")
	line = reDeleted.ReplaceAllString(line, "~~$1~~")
	line = reLineBreak.ReplaceAllString(line, "<br>$1")
	return line
}
