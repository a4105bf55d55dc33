package main

import "github.com/notargets/planerbc/cmd"

func main() {
	cmd.Execute()
}
