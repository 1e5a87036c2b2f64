package main

import (
	"clock.raspi/chimeclock/cmd/chimeclock/cmd"
)

func main() {
	cmd.Execute()
}
