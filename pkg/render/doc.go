// Package render turns link trees into Graphviz diagrams.
//
// [ToDOT] emits DOT source describing the parent/child structure of a
// tree, with joint names and types on the nodes. [RenderSVG] and
// [RenderPNG] rasterize that source with the embedded graphviz engine,
// so no external dot binary is needed.
package render
