package main

import "github.com/oshokin/simple-installer/cmd/simple-installer/cmd"

func main() {
	cmd.Execute()
}
