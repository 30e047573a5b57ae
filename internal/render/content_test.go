// ABOUTME: Tests for HTML detection and Markdown conversion of item bodies
// ABOUTME: Mirrors the shapes feed content actually arrives in

package render_test

import (
	"strings"
	"testing"

	"github.com/rhajizada/gazette-cli/internal/render"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"doctype", "<!DOCTYPE html><html></html>", true},
		{"paragraph tag", "<p>Hello world</p>", true},
		{"anchor with attrs", `Read <a href="https://example.com">more</a>`, true},
		{"plain text", "Just a plain summary.", false},
		{"markdownish", "# Heading\n\nSome *emphasis*", false},
		{"angle brackets in prose", "use x < y > z carefully", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render.IsHTML(tt.content); got != tt.want {
				t.Errorf("IsHTML(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestToMarkdown_ConvertsHTML(t *testing.T) {
	got := render.ToMarkdown("<p>Hello <strong>world</strong></p>")
	if !strings.Contains(got, "**world**") {
		t.Errorf("expected bold markdown, got %q", got)
	}
}

func TestToMarkdown_PassesThroughPlainText(t *testing.T) {
	in := "No markup here at all."
	if got := render.ToMarkdown(in); got != in {
		t.Errorf("plain text must pass through unchanged, got %q", got)
	}
}

func TestToMarkdown_Empty(t *testing.T) {
	if got := render.ToMarkdown(""); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestShortID(t *testing.T) {
	if got := render.ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("expected 8-char prefix, got %q", got)
	}
	if got := render.ShortID("abc"); got != "abc" {
		t.Errorf("short ids must pass through, got %q", got)
	}
}
