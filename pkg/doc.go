// Package pkg provides the core libraries for gviz graph visualization.
//
// # Overview
//
// gviz turns structured documents (JSON, XML, CSV) into directed graphs
// that preserve shared references and cycles, then renders them with
// pluggable visualizers. The pkg directory is organized around the
// data flow:
//
//	Document bytes
//	       ↓
//	  [source] datasource plugins (syntax → value tree)
//	       ↓
//	  [walk] structural walker (value tree → graph, cycle collapse)
//	       ↓
//	  [graph] canonical node/edge model
//	       ↓
//	  [viz] visualizer plugins (graph → text/DOT/SVG/HTML)
//
// # Main Packages
//
// [value] - The generic document value tree: scalars, sequences, and
// mappings. Datasources parse into it; the walker consumes it.
//
// [source] - The datasource plugin contract plus the built-in formats
// (jsonds, xmlds, csvds) and the startup registry (source/sources).
//
// [walk] - The structural walker. Collapses shared composite values
// into single nodes by source identity and terminates cycles by
// registering nodes before descending. Enforces depth and size limits.
//
// [graph] - Arena-indexed directed multigraph with insertion-ordered
// iteration. Self-loops, parallel edges, and isolated nodes are all
// representable.
//
// [viz] - The visualizer plugin contract plus the built-in renderers
// (text, dot, html) and the registry (viz/visualizers).
//
// [graphio] - JSON import and export for graphs.
//
// [pipeline] - The parse → render pipeline with content-hash caching,
// shared by the CLI and the HTTP server.
//
// [cache] - Artifact cache with file and null backends.
//
// [workspace] - Saved documents with memory, Redis, and MongoDB
// store backends.
//
// [config] - TOML configuration for limits, cache, server, and store.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Quick Start
//
// Parse a document and render it:
//
//	import (
//	    "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source"
//	    "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/source/jsonds"
//	    "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/viz/dot"
//	)
//
//	g, err := jsonds.New().Parse(data, source.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(dot.ToDOT(g, dot.Options{}))
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/walk/...   # Specific package
package pkg
