package dag

import (
	"fmt"
	"strings"
)

// Graph is a directed graph of named nodes. Node insertion order is kept and
// drives the visiting order of Peel.
type Graph struct {
	nodes map[string]*node
	order []string
}

type node struct {
	id   string
	deps map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:   id,
		deps: make(map[string]*node),
	}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. A self-referential
// edge is accepted; it makes the node impossible to visit. An error is
// returned if either node does not exist.
func (g *Graph) AddEdge(fromID, toID string) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}
	toNode.deps[fromID] = fromNode
	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// StuckError reports the nodes Peel could not visit because their
// dependencies form a cycle or depend on one.
type StuckError struct {
	Nodes []string
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("dependency cycle among nodes: %s", strings.Join(e.Nodes, ", "))
}

// Peel visits every node after all of its dependencies, in passes over the
// remaining nodes in insertion order. A node visited during a pass unblocks
// later nodes of the same pass. An error returned by visit stops the walk and
// is returned unchanged. When a pass visits nothing, Peel returns a
// *StuckError listing every remaining node.
func (g *Graph) Peel(visit func(id string) error) error {
	visited := make(map[string]bool, len(g.nodes))
	remaining := append([]string(nil), g.order...)

	for len(remaining) > 0 {
		var next []string
		for _, id := range remaining {
			if !g.satisfied(g.nodes[id], visited) {
				next = append(next, id)
				continue
			}
			if err := visit(id); err != nil {
				return err
			}
			visited[id] = true
		}
		if len(next) == len(remaining) {
			return &StuckError{Nodes: next}
		}
		remaining = next
	}
	return nil
}

func (g *Graph) satisfied(n *node, visited map[string]bool) bool {
	for depID := range n.deps {
		if !visited[depID] {
			return false
		}
	}
	return true
}
