package main

import "tokencost/internal/cli"

func main() {
	cli.Execute()
}
