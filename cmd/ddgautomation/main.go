package main

import "github.com/swapnilcelonis/ddgautomation/cmd/ddgautomation/cmd"

func main() {
	cmd.Execute()
}
