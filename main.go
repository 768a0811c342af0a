package main

import "github.com/caseops/casectl/cmd"

func main() {
	cmd.Execute()
}
