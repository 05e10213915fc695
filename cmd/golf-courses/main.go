package main

import "github.com/pfrederiksen/golf-courses/internal/cli"

func main() {
	cli.Execute()
}
