package main

import (
	"log"
	"os"

	"golang.org/x/term"

	"github.com/sheikhrachel/go-gol-term/utils"
)

const configFile = "config.json"

func main() {
	if err := runGame(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func runGame() error {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		if !utils.IsNotExist(err) {
			return err
		}
		log.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	// Handle Ctrl+C gracefully
	stop, unregister := utils.NotifyStop()
	defer unregister()

	refresh := config.Refresh
	if refresh && !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Println("stdout is not a terminal, falling back to plain output")
		refresh = false
	}

	g, err := initializeGame(config, os.Stdout, refresh)
	if err != nil {
		return err
	}

	_, runErr := g.run(stop)
	if err = g.renderer.Restore(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	displayFinalStats(os.Stdout, g.stats)
	return nil
}
