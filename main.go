package main

import (
	"os"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
