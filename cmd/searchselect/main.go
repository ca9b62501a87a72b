// Package main is the entry point for the searchselect CLI.
package main

import (
	"github.com/donaldgifford/searchselect/cmd/searchselect/cmd"
)

func main() {
	cmd.Execute()
}
