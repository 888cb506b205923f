package main

import "github.com/saravenpi/outreach/internal/cli"

func main() {
	cli.Execute()
}
