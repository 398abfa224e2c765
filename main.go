package main

import "github.com/sjzsdu/speak/cmd"

func main() {
	cmd.Execute()
}
