package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/pokedex/internal/pokeagent"
)

func main() {
	pokeagent.NewApp("pokeagent").Run()
}
