package main

import (
	"os"

	"mcqreview/internal/shuffle"
)

func main() {
	os.Exit(shuffle.Run(os.Args[1:], os.Stdout, os.Stderr))
}
