package main

import "github.com/information-sharing-networks/pim-catalog/internal/cli"

func main() {
	cli.Execute()
}
