package main

import "github.com/cineguess/cinedex/internal/cli"

func main() {
	cli.Execute()
}
