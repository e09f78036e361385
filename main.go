package main

import "hourdesk/cmd"

func main() {
	cmd.Execute()
}
