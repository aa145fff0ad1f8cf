package main

import "github.com/mcoot/metrogame/internal/cli"

func main() {
	cli.Execute()
}
