package utils

import (
	"strings"
	"unicode"
)

// CountWords counts the words of note content, ignoring common markdown
// markers and fenced code blocks.
func CountWords(text string) int {
	count := 0
	for _, field := range strings.FieldsFunc(stripMarkdown(text), unicode.IsSpace) {
		if strings.IndexFunc(field, isWordRune) >= 0 {
			count++
		}
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func stripMarkdown(text string) string {
	text = removeCodeBlocks(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#>")
		line = strings.TrimSpace(line)
		// Bullets and numbered list markers
		for _, prefix := range []string{"- ", "* ", "+ "} {
			line = strings.TrimPrefix(line, prefix)
		}
		if dot := strings.Index(line, ". "); dot > 0 && strings.IndexFunc(line[:dot], func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
			line = line[dot+2:]
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func removeCodeBlocks(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			return text
		}
		text = text[:start] + text[start+end+6:]
	}
}
