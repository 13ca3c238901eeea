package main

import "triton-install/internal/cli"

func main() {
	cli.Execute()
}
