package main

import "github.com/templpad/templpad/cmd"

func main() {
	cmd.Execute()
}
