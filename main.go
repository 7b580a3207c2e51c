package main

import "github.com/nexusauto/mcd2d/cmd"

func main() {
	cmd.Execute()
}
