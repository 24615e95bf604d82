package main

import "github.com/bcdannyboy/mcpayoff/cli"

func main() {
	cli.Execute()
}
