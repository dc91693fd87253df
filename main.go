package main

import "op-tracker/cmd"

func main() {
	cmd.Execute()
}
