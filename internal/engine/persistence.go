package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// graphFile is the on-disk layout. The directed, multigraph and graph keys
// keep files readable by networkx node-link loaders; they are ignored on load.
type graphFile struct {
	Directed   bool           `json:"directed"`
	Multigraph bool           `json:"multigraph"`
	Graph      map[string]any `json:"graph"`
	Nodes      []nodeRecord   `json:"nodes"`
	Edges      []edgeRecord   `json:"edges"`
}

type nodeRecord struct {
	ID      string `json:"id"`
	SHA     string `json:"sha"`
	Base    string `json:"base,omitempty"`
	PullURL string `json:"pull_url,omitempty"`
}

type edgeRecord struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Load reads the graph file at path. A missing file yields a graph holding
// only an empty trunk placeholder. The loaded graph must be a tree rooted at trunk.
func Load(path, trunk string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTrunkGraph(trunk), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}

	var file graphFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse graph file %s: %w", path, err)
	}

	g := NewGraph()
	for _, n := range file.Nodes {
		if err := g.AddNode(Node{Name: n.ID, SHA: n.SHA, Base: n.Base, PullURL: n.PullURL}); err != nil {
			return nil, fmt.Errorf("invalid graph file %s: %w", path, err)
		}
	}
	for _, e := range file.Edges {
		g.appendEdge(Edge{Parent: e.Source, Child: e.Target})
	}

	if err := g.Validate(trunk); err != nil {
		return nil, fmt.Errorf("invalid graph file %s: %w", path, err)
	}
	return g, nil
}

// Marshal encodes the graph with 2-space indentation and a trailing newline
func Marshal(g *Graph) ([]byte, error) {
	file := graphFile{
		Directed: true,
		Graph:    map[string]any{},
		Nodes:    make([]nodeRecord, 0, len(g.order)),
		Edges:    make([]edgeRecord, 0, len(g.edges)),
	}
	for _, n := range g.Nodes() {
		file.Nodes = append(file.Nodes, nodeRecord{ID: n.Name, SHA: n.SHA, Base: n.Base, PullURL: n.PullURL})
	}
	for _, e := range g.edges {
		file.Edges = append(file.Edges, edgeRecord{Source: e.Parent, Target: e.Child})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the graph to path, replacing the file atomically
func Save(g *Graph, path string) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp graph file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace graph file %s: %w", path, err)
	}
	return nil
}
