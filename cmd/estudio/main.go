// Package main is the entry point for the estudio CLI.
//
// estudio manages a writer's content-organization project: hierarchies of
// folders and articles with ordered sections, stored as a single local
// document plus a sibling image blob store. The CLI exposes the
// non-interactive operations: creating a project, importing/exporting
// backup archives, rendering the project to an HTML document, and
// inspecting the snapshot history.
package main

func main() {
	Execute()
}
