package main

import "github.com/fcoury/msxgo/internal/cli"

func main() {
	cli.Execute()
}
