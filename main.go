package main

import "gridsel/cmd"

func main() {
	cmd.Execute()
}
