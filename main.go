package main

import "github.com/gaurav-prasanna/reviewprep/cmd"

func main() {
	cmd.Execute()
}
