package main

import "github.com/civicpulse/civicpulse/internal/cli"

func main() {
	cli.Execute()
}
