// Package main is the entry point for the catalog tool.
package main

import "titlecatalog/internal/cli"

func main() {
	cli.Execute()
}
