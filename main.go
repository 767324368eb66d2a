package main

import (
	"os"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
