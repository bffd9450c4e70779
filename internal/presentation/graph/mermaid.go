package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
)

// Options control what GenerateMermaid draws.
type Options struct {
	// Statuses annotates every node with its current status and styles it.
	Statuses bool
}

// GenerateMermaid produces a Mermaid flowchart of root and its descendants.
// Leaves are drawn as [Rectangle] and nodes with children as {{Hexagon}}.
// Node IDs follow pre-order (n0 is the root) so output is stable across runs.
func GenerateMermaid(root behaviour.Behaviour, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	classes := make(map[domain.Status][]string)
	next := 0
	var walk func(node behaviour.Behaviour) string
	walk = func(node behaviour.Behaviour) string {
		id := fmt.Sprintf("n%d", next)
		next++

		label := escapeLabel(node.Name())
		if opts.Statuses {
			label += "<br/>" + node.Status().String()
			classes[node.Status()] = append(classes[node.Status()], id)
		}

		children := node.Children()
		opener, closer := "[", "]"
		if len(children) > 0 {
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)

		for _, child := range children {
			childID := walk(child)
			fmt.Fprintf(&sb, "    %s --> %s\n", id, childID)
		}
		return id
	}
	walk(root)

	if opts.Statuses {
		sb.WriteString("\n    %% Status Styles\n")
		// Force black text (color:#000) for contrast on light and dark themes.
		sb.WriteString("    classDef success fill:#dcfce7,stroke:#16a34a,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failure fill:#fee2e2,stroke:#dc2626,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef running fill:#fef9c3,stroke:#ca8a04,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef invalid fill:#f3f4f6,stroke:#6b7280,color:#000;\n")
		for _, s := range []domain.Status{domain.StatusSuccess, domain.StatusFailure, domain.StatusRunning, domain.StatusInvalid} {
			if ids := classes[s]; len(ids) > 0 {
				fmt.Fprintf(&sb, "    class %s %s;\n", strings.Join(ids, ","), strings.ToLower(s.String()))
			}
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
