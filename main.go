package main

import "github.com/MyCarrier-DevOps/go-magpatch/cmd"

func main() {
	cmd.Execute()
}
