package main

import (
	"github.com/yumyai/phamfasta/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
