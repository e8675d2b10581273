package assistant

import (
	"regexp"
	"strings"
)

var (
	mdFence      = regexp.MustCompile("(?m)^[ \t]*```[^\n]*\n?")
	mdImage      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)[^)]*\)`)
	mdHeading    = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	mdQuote      = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	mdRule       = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)
	mdBullet     = regexp.MustCompile(`(?m)^([ \t]*)[*+-][ \t]+`)
	mdBold       = regexp.MustCompile(`(\*\*|__)(\S(?:.*?\S)?)(\*\*|__)`)
	mdItalicStar = regexp.MustCompile(`\*(\S(?:[^*]*?\S)?)\*`)
	mdItalicUnd  = regexp.MustCompile(`(^|[^\w])_(\S(?:[^_]*?\S)?)_([^\w]|$)`)
	mdStrike     = regexp.MustCompile(`~~(.+?)~~`)
	mdInlineCode = regexp.MustCompile("`([^`]+)`")
	mdTableRule  = regexp.MustCompile(`(?m)^[ \t]*\|?[ \t]*:?-{3,}:?[ \t]*(\|[ \t]*:?-{3,}:?[ \t]*)*\|?[ \t]*$\n?`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown reduces model markdown to plain text. Link targets are kept in parentheses;
// list items keep a leading dash.
func StripMarkdown(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = mdFence.ReplaceAllString(text, "")
	text = mdImage.ReplaceAllString(text, "$1")
	text = mdLink.ReplaceAllStringFunc(text, func(m string) string {
		parts := mdLink.FindStringSubmatch(m)
		if parts[1] == parts[2] {
			return parts[1]
		}
		return parts[1] + " (" + parts[2] + ")"
	})
	text = mdRule.ReplaceAllString(text, "")
	text = mdTableRule.ReplaceAllString(text, "")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdQuote.ReplaceAllString(text, "")
	text = mdBullet.ReplaceAllString(text, "$1- ")
	text = mdBold.ReplaceAllString(text, "$2")
	text = mdItalicStar.ReplaceAllString(text, "$1")
	text = mdItalicUnd.ReplaceAllString(text, "$1$2$3")
	text = mdStrike.ReplaceAllString(text, "$1")
	text = mdInlineCode.ReplaceAllString(text, "$1")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			cells := strings.Split(strings.Trim(strings.TrimSpace(line), "|"), "|")
			for j := range cells {
				cells[j] = strings.TrimSpace(cells[j])
			}
			line = strings.Join(cells, "  ")
		}
		lines[i] = line
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
