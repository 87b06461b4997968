// Package textutil normalizes generated text for display.
//
// The generation service is instructed to answer in plain prose, but models
// routinely emit Markdown anyway. These helpers are defensive, total
// functions over strings: they never fail, worst case they pass text
// through unchanged.
package textutil

import (
	"regexp"
	"strings"
)

var (
	atxHeadingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldPattern         = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern       = regexp.MustCompile(`\*([^*]+)\*`)
	boldUnderPattern    = regexp.MustCompile(`__([^_]+)__`)
	italicUnderPattern  = regexp.MustCompile(`_([^_]+)_`)
	strikePattern       = regexp.MustCompile(`~~([^~]+)~~`)
	fencedCodePattern   = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodePattern   = regexp.MustCompile("`([^`]+)`")
	excessNewlinePattern = regexp.MustCompile(`\n{3,}`)
)

// CleanMarkdown strips Markdown styling markers while preserving the
// enclosed content. Substitutions are global and order matters: bold must
// unwrap before single-asterisk italic, and fenced code blocks must be
// deleted before inline code spans are unwrapped.
//
// CleanMarkdown is idempotent, and empty input is returned unchanged.
func CleanMarkdown(text string) string {
	if text == "" {
		return text
	}

	text = atxHeadingPattern.ReplaceAllString(text, "")

	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = boldUnderPattern.ReplaceAllString(text, "$1")
	text = italicUnderPattern.ReplaceAllString(text, "$1")

	text = strikePattern.ReplaceAllString(text, "$1")

	text = fencedCodePattern.ReplaceAllString(text, "")
	text = inlineCodePattern.ReplaceAllString(text, "$1")

	text = excessNewlinePattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
