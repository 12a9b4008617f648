package main

import "github.com/sobrinN/DASH.rh/cmd"

func main() {
	cmd.Execute()
}
