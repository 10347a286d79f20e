package main

import "github.com/dirant/dirant/internal/cli"

func main() {
	cli.Execute()
}
