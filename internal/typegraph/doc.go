// Package typegraph is the language-neutral model of declared types that
// the view catalog resolves against.
//
// A front-end (Go packages in internal/analyze, YAML declarations in
// internal/schema) fills a Graph; the catalog only sees the Provider
// interface. Types are identity-comparable pointers: front-ends must hand
// out one *Type per distinct type.
package typegraph
