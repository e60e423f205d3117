package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/pokedex/internal/pokeapi"
)

func main() {
	pokeapi.NewApp("pokeapi").Run()
}
