package main

import "photokeeper/cmd"

func main() {
	cmd.Execute()
}
