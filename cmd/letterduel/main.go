package main

import "github.com/letterduel/letterduel/internal/cli"

func main() {
	cli.Execute()
}
