package main

import (
	"github.com/byxorna/tinyhouse/cmd"
)

func main() {
	cmd.Execute()
}
