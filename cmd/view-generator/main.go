// Package main provides the CLI entrypoint for view-generator.
//
// view-generator reads annotated data-holder types, from Go packages or
// from YAML/TOML declaration files, and generates typed views over the
// persisted-value store for them:
//   - gen writes the views file, and the tables file when tables are configured
//   - check reports generated files that are out of date
//   - tables writes only the tag, layer, animator and material tables
//   - version prints build information
package main

import (
	"os"
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
