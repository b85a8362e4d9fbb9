package service

import (
	"sort"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
)

// Graph builds the dependency diagram for the requested components.
// Edges are taken from each component's own result so they stay attached
// to the component that declared them.
func (d *Dependencies) Graph(componentNames []string) *domain.Graph {
	nodes := map[string]*domain.Node{}
	edges := map[domain.Edge]struct{}{}

	addNode := func(id string, known bool) *domain.Node {
		kind := domain.NodeExternal
		if known {
			kind = domain.NodeComponent
		}
		n, ok := nodes[id]
		if !ok {
			n = &domain.Node{ID: id, Kind: kind}
			nodes[id] = n
		} else if known {
			n.Kind = domain.NodeComponent
		}
		return n
	}

	for _, name := range componentNames {
		addNode(name, true).Requested = true

		deps := d.GetDependencies(name)
		for dep, known := range deps.Dependencies {
			addNode(dep, known)
			edges[domain.Edge{From: name, To: dep, Kind: domain.EdgeDependsOn}] = struct{}{}
		}
		for dependent, known := range deps.Dependents {
			addNode(dependent, known)
			edges[domain.Edge{From: dependent, To: name, Kind: domain.EdgeConsumes}] = struct{}{}
		}
	}

	g := &domain.Graph{
		Nodes: make([]*domain.Node, 0, len(nodes)),
		Edges: make([]*domain.Edge, 0, len(edges)),
	}
	for _, n := range nodes {
		g.Nodes = append(g.Nodes, n)
	}
	for e := range edges {
		e := e
		g.Edges = append(g.Edges, &e)
	}

	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.Slice(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Kind < b.Kind
	})

	return g
}
