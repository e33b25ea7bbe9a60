package main

import "github.com/mcoot/gameroster/internal/cli"

func main() {
	cli.Execute()
}
