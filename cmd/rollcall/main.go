package main

import "github.com/sehajsb/rollcall/internal/cli"

func main() {
	cli.Execute()
}
