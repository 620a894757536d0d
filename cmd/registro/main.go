package main

import "github.com/jismah/serverless-registro/cmd"

func main() {
	cmd.Execute()
}
