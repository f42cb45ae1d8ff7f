package main

import "pathlab/cmd"

func main() {
	cmd.Execute()
}
