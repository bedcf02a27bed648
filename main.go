package main

import "github.com/gaurav-prasanna/adfpipe/cmd"

func main() {
	cmd.Execute()
}
