package main

import "github.com/user/ytui/cmd"

func main() {
	cmd.Execute()
}
