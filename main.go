package main

import (
	cmd "github.com/gatefig/gatefig/cmd/gatefig"
	"github.com/gatefig/gatefig/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting gatefig")
	cmd.Execute()
}
