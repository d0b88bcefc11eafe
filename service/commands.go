package service

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"blogposts/app/config"
	"blogposts/app/repositories"
	"blogposts/app/seed"
)

// HandleCommand runs a db subcommand against the configured store and
// returns an exit code.
func HandleCommand(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		printDbHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "seed":
		return withStore(cfg, func(store *repositories.Store) int { return seedPosts(store, args[1:]) })
	case "drop":
		return withStore(cfg, func(store *repositories.Store) int { return drop(store, args[1:]) })
	case "count":
		return withStore(cfg, count)
	case "backup":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for backup")
			return 1
		}
		return withStore(cfg, func(store *repositories.Store) int { return backup(store, args[1]) })
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return withStore(cfg, func(store *repositories.Store) int { return restore(store, args[1]) })
	case "help":
		printDbHelp()
		return 0
	default:
		fmt.Printf("Unknown db command: %s\n\n", cmd)
		printDbHelp()
		return 1
	}
}

// printDbHelp prints help for db subcommands.
func printDbHelp() {
	helpText := `Usage: blogposts db <command>

Commands:
  seed [-n <count>]               Insert random blog posts (default 10)
  drop [-y]                       Delete every blog post
  count                           Print the number of stored blog posts
  backup <file>                   Write a backup of the database (badger only)
  restore <file>                  Load a backup into the database (badger only)
  help                            Display this help message
`
	fmt.Println(helpText)
}

func withStore(cfg *config.Config, fn func(*repositories.Store) int) int {
	if cfg.Storage.Driver == config.DriverBadger && cfg.Storage.BadgerPath == "" {
		fmt.Println("Error: BADGER_PATH must be set for db commands")
		return 1
	}

	store, err := repositories.Open(context.Background(), cfg.Storage)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	return fn(store)
}

// seedPosts inserts random posts.
func seedPosts(store *repositories.Store, args []string) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	n := fs.Int("n", seed.DefaultCount, "number of posts to insert")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	posts, err := seed.Seed(context.Background(), store.Posts, *n)
	if err != nil {
		fmt.Printf("Failed to seed database: %v\n", err)
		return 1
	}
	fmt.Printf("Seeded %d posts\n", len(posts))
	return 0
}

// drop removes every post after confirmation.
func drop(store *repositories.Store, args []string) int {
	fs := flag.NewFlagSet("drop", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	yes := fs.Bool("y", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if !*yes {
		fmt.Print("Are you sure you want to drop all posts? This cannot be undone. [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return 1
		}
	}

	if err := store.Posts.DropAll(context.Background()); err != nil {
		fmt.Printf("Failed to drop posts: %v\n", err)
		return 1
	}
	fmt.Println("All posts dropped")
	return 0
}

// count prints the number of stored posts.
func count(store *repositories.Store) int {
	n, err := store.Posts.Count(context.Background())
	if err != nil {
		fmt.Printf("Failed to count posts: %v\n", err)
		return 1
	}
	fmt.Printf("%d posts\n", n)
	return 0
}

// backup writes a full backup of the database to backupFile.
func backup(store *repositories.Store, backupFile string) int {
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		if errors.Is(err, repositories.ErrUnsupported) {
			_ = os.Remove(backupFile)
		}
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore loads a backup into the database.
func restore(store *repositories.Store, backupFile string) int {
	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return store.Restore(f)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}
