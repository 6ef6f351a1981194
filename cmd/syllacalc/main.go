package main

import "github.com/gasparyanartur/syllacalc/internal/cli"

func main() {
	cli.Execute()
}
