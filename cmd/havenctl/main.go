package main

import "havenstay/cmd/havenctl/cmd"

func main() {
	cmd.Execute()
}
