package main

import "github.com/hnguyen/codeassist/cmd"

func main() {
	cmd.Execute()
}
