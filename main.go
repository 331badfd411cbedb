package main

import "github.com/user/clipper/cmd"

func main() {
	cmd.Execute()
}
