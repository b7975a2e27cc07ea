// Package graph provides the insertion-ordered node/edge structure shared
// by the triple projector and the keyword relation graphs.
//
// Node identifiers are unique and kept in first-seen order. Edges are
// directed, labeled, and deduplicated by the full (source, target, label)
// tuple. Adding an edge registers both endpoints as nodes, so no edge can
// reference a node absent from the node list.
//
// The JSON form is {"nodes":[{"id":...}],"links":[{"source":...,
// "target":...,"label":...}]} with both lists in insertion order, making
// serialization deterministic for a fixed insertion sequence.
package graph

import "encoding/json"

// Node is a graph node identified by a string.
type Node struct {
	ID string `json:"id"`
}

// Edge is a labeled directed edge between two node identifiers.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Graph is an insertion-ordered set of nodes and labeled edges.
// Not safe for concurrent mutation; build fully, then share read-only.
type Graph struct {
	nodes    []Node
	edges    []Edge
	nodeSeen map[string]struct{}
	edgeSeen map[Edge]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    []Node{},
		edges:    []Edge{},
		nodeSeen: make(map[string]struct{}),
		edgeSeen: make(map[Edge]struct{}),
	}
}

// AddNode inserts a node if its id has not been seen. Reports whether
// the node was added.
func (g *Graph) AddNode(id string) bool {
	if _, ok := g.nodeSeen[id]; ok {
		return false
	}
	g.nodeSeen[id] = struct{}{}
	g.nodes = append(g.nodes, Node{ID: id})
	return true
}

// AddEdge appends a labeled edge and registers both endpoints as nodes.
// Duplicate (source, target, label) tuples are dropped. Reports whether
// the edge was added.
func (g *Graph) AddEdge(source, target, label string) bool {
	e := Edge{Source: source, Target: target, Label: label}
	if _, ok := g.edgeSeen[e]; ok {
		return false
	}
	g.AddNode(source)
	g.AddNode(target)
	g.edgeSeen[e] = struct{}{}
	g.edges = append(g.edges, e)
	return true
}

// Nodes returns the node list in insertion order.
// The returned slice must not be mutated.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edge list in insertion order.
// The returned slice must not be mutated.
func (g *Graph) Edges() []Edge { return g.edges }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// MarshalJSON encodes the graph as {"nodes":[...],"links":[...]}.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Nodes []Node `json:"nodes"`
		Links []Edge `json:"links"`
	}{g.nodes, g.edges})
}
