package main

import "questjournal/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
