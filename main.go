package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/brawler/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	levelName := flag.String("level", "", "level file in the prefab directory (default level.yaml)")
	prefabDir := flag.String("prefabs", prefabs.Dir, "on-disk prefab directory that shadows the embedded prefabs")
	watch := flag.Bool("watch", true, "hot reload prefabs and scripts on change")
	flag.Parse()

	prefabs.Dir = *prefabDir

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("brawler")

	game, err := NewGame(*levelName, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
