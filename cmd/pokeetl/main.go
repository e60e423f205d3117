package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/pokedex/internal/pokeetl"
)

func main() {
	pokeetl.NewApp("pokeetl").Run()
}
