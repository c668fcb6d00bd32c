package main

import "github.com/they4kman/sparsesweep/cmd"

func main() {
	cmd.Execute()
}
