package main

import "github.com/tallycash/tokenlist-cli/cmd"

func main() {
	cmd.Execute()
}
