package main

import "plume/cmd"

func main() {
	cmd.Execute()
}
