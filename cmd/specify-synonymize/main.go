package main

import "specifytools/cmd/specify-synonymize/cmd"

func main() {
	cmd.Execute()
}
