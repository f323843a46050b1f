package main

import (
	"github.com/s8ken/SYMBI-Resonate/pkg/cli"
)

func main() {
	cli.Execute()
}
