package main

import "github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/commands"

func main() {
	commands.Execute()
}
