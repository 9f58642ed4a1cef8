package main

import "github.com/droplr/droplr-go/cmd/droplr/cmd"

func main() {
	cmd.Execute()
}
