// Package gen turns the views resolved by a view.Catalog into one Go
// source file.
//
// A run has three passes:
//   - discovery and resolution of every view reachable from the roots
//     (view.Catalog);
//   - BuildTree, which arranges the generated views by TypePath into a
//     tree of namespace and container nodes;
//   - Emitter.Emit, a depth-first walk writing each view's declaration.
//
// Go has no nested declarations. A container scope is rendered as a
// delimited comment region, and the generic parameters of a container are
// prepended to the parameter list of every view declared inside it.
//
// Output is produced with text/template and go/format. Fatal errors are
// caught once per run by Generator.Generate and replace the output with a
// diagnostic comment.
package gen
