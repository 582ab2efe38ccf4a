package main

import "github.com/ladislav-hovan/lioness-sparsity-scripts/cmd"

func main() {
	cmd.Execute()
}
