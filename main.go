package main

import "github.com/notargets/gomarch/cmd"

func main() {
	cmd.Execute()
}
