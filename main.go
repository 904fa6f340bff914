package main

import "github.com/modscan/modscan/cmd"

func main() {
	cmd.Execute()
}
