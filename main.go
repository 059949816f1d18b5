package main

import "github.com/xvierd/mindit-cli/cmd"

func main() {
	cmd.Execute()
}
