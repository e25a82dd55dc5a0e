package main

import "github.com/jsphweid/chordsheet/cmd"

func main() {
	cmd.Execute()
}
