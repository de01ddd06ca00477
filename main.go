// main is the entry point for the metricviz CLI.
package main

import (
	"github.com/huangsam/metricviz/cmd"
	"github.com/huangsam/metricviz/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.CloseStore()
		contract.LogFatal("metricviz", err)
	}
}
