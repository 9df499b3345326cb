package main

import "github.com/oshokin/tickstack/cmd/tickstack/cmd"

func main() {
	cmd.Execute()
}
