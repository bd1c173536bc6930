package main

import (
	"github.com/codescouts-academy/clean-architecture-libraries/cmd"
)

func main() {
	cmd.Execute()
}
