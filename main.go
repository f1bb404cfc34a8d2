package main

import "doc-chat-cli/cmd"

func main() {
	cmd.Execute()
}
