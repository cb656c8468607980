package main

import (
	"github.com/andrescamacho/recipe-randomiser/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
