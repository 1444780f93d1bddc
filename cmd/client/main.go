package main

import "qrkeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
