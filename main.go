package main

import (
	"github.com/fermi-lat/tooldesc/cmd"
)

func main() {
	cmd.Execute()
}
