package main

import (
	"github.com/kiosk404/pokedex/internal/pokectl/cmd"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/util"
)

func main() {
	util.CheckErr(cmd.NewDefaultPokeCtlCommand().Execute())
}
