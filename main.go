package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/TomRobson01/PDP-3CsExperiments/config"
	"github.com/TomRobson01/PDP-3CsExperiments/logging"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlays (framing guides, occlusion ray)")
	configDir := flag.String("config", ".", "directory containing 3cs.yaml")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		bootLogger := logging.Setup("info")
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	logger := logging.Setup(config.GetString("logLevel"))
	if *debug || config.GetBool("debug") {
		*debug = true
	}

	ebiten.SetWindowSize(config.GetInt("window.width"), config.GetInt("window.height"))
	ebiten.SetWindowTitle("3cs playground")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(config.GetBool("window.vsync"))

	game, err := NewGame(logger, *debug)
	if err != nil {
		logger.Fatal().Err(err).Msg("boot")
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Error().Err(err).Msg("run")
		os.Exit(1)
	}
}
