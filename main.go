package main

import "github.com/ItsJustMeChris/claude-cost/cmd"

func main() {
	cmd.Execute()
}
