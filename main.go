package main

import (
	"github.com/sidkik/volcp/cmd"
	"github.com/sidkik/volcp/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
