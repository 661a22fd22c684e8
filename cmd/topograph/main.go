// Command topograph loads YAML scenes and answers adjacency queries over them.
package main

import (
	"os"

	"github.com/katalvlaran/topograph/cmd/topograph/commands"
)

var version = "dev"

func main() {
	os.Exit(commands.Execute(version))
}
