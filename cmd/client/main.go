package main

import "telemim/cmd/client/cmd"

func main() {
	cmd.Execute()
}
