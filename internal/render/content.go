// ABOUTME: Item content processing: HTML detection, Markdown conversion, terminal output
// ABOUTME: Feed content arrives as HTML and is rendered with glamour for the terminal

package render

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
)

// htmlTagPattern matches common HTML tags
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// IsHTML checks if content appears to be HTML
func IsHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts HTML content to Markdown.
// If the content doesn't appear to be HTML, returns it unchanged.
func ToMarkdown(content string) string {
	if content == "" {
		return content
	}
	if !IsHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		// If conversion fails, return original content
		return content
	}
	return strings.TrimSpace(markdown)
}

// Content prepares an item's body for the terminal: HTML becomes
// Markdown, Markdown becomes styled output. Falls back to the plain
// Markdown when styling fails.
func Content(body string) string {
	markdown := ToMarkdown(body)
	rendered, err := glamour.Render(markdown, "dark")
	if err != nil {
		return markdown + "\n"
	}
	return rendered
}
