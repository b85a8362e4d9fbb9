package export

import (
	"fmt"
	"strings"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
)

// ToDOT renders a dependency graph as Graphviz DOT text.
func ToDOT(g *domain.Graph, title string) string {
	var b strings.Builder
	b.WriteString("digraph G {\n  rankdir=LR;\n  node [shape=box, style=rounded];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label=%s; fontname="Helvetica";`, quote(title)))
		b.WriteString("\n")
	}

	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		style := `shape=box,style="rounded,filled",fillcolor="#eef6ff"`
		switch {
		case n.Requested:
			style = `shape=box,style="rounded,filled,bold",fillcolor="#d4edda"`
		case n.Kind == domain.NodeExternal:
			style = `shape=ellipse,style="filled",fillcolor="#fff3cd"`
		}
		b.WriteString(fmt.Sprintf("  %s [label=%s, %s];\n", quote(n.ID), quote(n.ID), style))
	}

	for _, e := range g.Edges {
		if e == nil {
			continue
		}
		lbl := "depends on"
		if e.Kind == domain.EdgeConsumes {
			lbl = "consumes"
		}
		b.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n", quote(e.From), quote(e.To), quote(lbl)))
	}

	b.WriteString("}\n")
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}
