package main

import "github.com/jsphweid/gscore2midi/cmd"

func main() {
	cmd.Execute()
}
