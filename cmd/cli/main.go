package main

import "github.com/HediM1312/twitter-clone/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
