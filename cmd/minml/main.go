package main

import "github.com/funvibe/minml/pkg/cli"

func main() {
	cli.Run()
}
