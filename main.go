package main

import (
	"fmt"
	"os"
	"strings"

	"blogposts/app/config"
	"blogposts/app/logger"
	"blogposts/service"

	"github.com/rs/zerolog/log"
)

const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the command line. It is split from main for tests.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogposts version %s\n", CliVersion)
	case "serve":
		cfg := loadConfig()
		if err := service.Run(cfg); err != nil {
			log.Error().Err(err).Msg("Server exited with error")
			exit(1)
		}
	case "db":
		cfg := loadConfig()
		if code := service.HandleCommand(cfg, os.Args[2:]); code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		exit(1)
		return nil
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	return cfg
}

func printHelp() {
	helpText := `Usage: blogposts <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog post HTTP service.
  db <command>                   Administer the post store (seed, drop, count, backup, restore).

Configuration is read from the environment and an optional .env file:
  APP_ENV, LOG_LEVEL, HTTP_ADDR, SHUTDOWN_TIMEOUT,
  STORE_DRIVER (badger|mongo), BADGER_PATH, MONGO_URI, MONGO_DATABASE, MONGO_COLLECTION
`
	fmt.Println(helpText)
}
