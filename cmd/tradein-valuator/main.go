// Package main is the entry point for the tradein-valuator CLI.
package main

import (
	"github.com/donaldgifford/tradein-valuator/cmd/tradein-valuator/cmd"
)

func main() {
	cmd.Execute()
}
