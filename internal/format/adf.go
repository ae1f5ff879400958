// Package format converts raw JIRA issue records into markdown reports,
// console summaries, aggregate statistics, and priority rankings.
package format

import (
	"strings"

	"github.com/replaydev/jirabridge/internal/jira"
)

const (
	noDescription        = "No description provided."
	emptyDescriptionTree = "No description content found."
)

// RenderDescription flattens rich-text body content to plain text. Plain
// string bodies pass through unchanged; Atlassian Document Format trees are
// walked depth-first. Absent or empty content yields a fixed sentinel, never
// an error.
func RenderDescription(body *jira.Body) string {
	if body == nil {
		return noDescription
	}
	if body.Doc == nil {
		if body.Text == "" {
			return noDescription
		}
		return body.Text
	}
	if body.Doc.Content == nil {
		return noDescription
	}

	var sb strings.Builder
	renderNodes(&sb, body.Doc.Content)

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return emptyDescriptionTree
	}
	return text
}

// renderNodes walks a list of ADF nodes left to right, appending their
// canonical plain-text rendering.
func renderNodes(sb *strings.Builder, nodes []*jira.Node) {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		switch node.Type {
		case "paragraph":
			renderInline(sb, node.Content)
			sb.WriteString("\n\n")

		case "heading":
			level := headingLevel(node)
			sb.WriteString(strings.Repeat("#", level))
			sb.WriteString(" ")
			renderInline(sb, node.Content)
			sb.WriteString("\n\n")

		case "codeBlock":
			sb.WriteString("```\n")
			renderInline(sb, node.Content)
			sb.WriteString("\n```\n\n")

		case "bulletList", "orderedList":
			for _, item := range node.Content {
				if item == nil {
					continue
				}
				sb.WriteString("- ")
				for _, paragraph := range item.Content {
					if paragraph == nil {
						continue
					}
					renderInline(sb, paragraph.Content)
				}
				sb.WriteString("\n")
			}
			sb.WriteString("\n")

		default:
			// Unknown node types recurse into children if present,
			// otherwise emit their own text.
			if len(node.Content) > 0 {
				renderNodes(sb, node.Content)
			} else if node.Text != "" {
				sb.WriteString(node.Text)
			}
		}
	}
}

// renderInline concatenates the text leaves of inline content.
func renderInline(sb *strings.Builder, nodes []*jira.Node) {
	for _, inline := range nodes {
		if inline != nil && inline.Type == "text" {
			sb.WriteString(inline.Text)
		}
	}
}

func headingLevel(node *jira.Node) int {
	if v, ok := node.Attrs["level"]; ok {
		// JSON numbers decode as float64
		if f, ok := v.(float64); ok && f >= 1 && f <= 6 {
			return int(f)
		}
	}
	return 1
}
