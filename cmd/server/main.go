package main

import "telemim/cmd/server/cmd"

func main() {
	cmd.Execute()
}
