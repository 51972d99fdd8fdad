package main

import "github.com/rybkr/sudoku-solver/cmd"

func main() {
	cmd.Execute()
}
