package main

import "github.com/pfrederiksen/curling-standings/internal/cli"

func main() {
	cli.Execute()
}
