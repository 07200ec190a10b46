package main

import (
	"github.com/ofs/ofss-config/cmd"
)

func main() {
	cmd.Execute()
}
