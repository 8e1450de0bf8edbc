package main

import "github.com/they4kman/probsweep/cmd"

func main() {
	cmd.Execute()
}
