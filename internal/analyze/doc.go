// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to fill a
// typegraph.Graph from Go source.
//
// Conventions:
//   - a type whose doc comment carries the //viewgen:root directive is a
//     root;
//   - the serialize struct tag sets the marker of a field ("value", "ref",
//     or both separated by a comma);
//   - the view struct tag sets overrides ("nested", "ignore" or "-");
//   - exported fields have public visibility, unexported fields private;
//   - an embedded struct is the base type: the host object if embedded,
//     otherwise the first embedded non-generic struct. Further embedded
//     structs are ordinary fields named after their type;
//   - a named integer type with constants of that type declared in its
//     package is an enum.
package analyze
