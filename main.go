package main

import "github.com/jsphweid/setscan/cmd"

func main() {
	cmd.Execute()
}
