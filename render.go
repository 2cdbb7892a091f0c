package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

var glamourRenderer *glamour.TermRenderer

func init() {
	initRenderer(defaultTheme)
}

func initRenderer(theme string) {
	if theme == "" {
		theme = defaultTheme
	}
	glamourRenderer, _ = glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(0),
	)
}

// renderBody renders a task body as markdown, falling back to the raw text
func renderBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	if glamourRenderer == nil {
		return body
	}

	rendered, err := glamourRenderer.Render(body)
	if err != nil {
		return body
	}

	return strings.Trim(rendered, "\n")
}
