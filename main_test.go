package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func callMain() (int, string) {
	var exitCode int
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
		panic("exit")
	}

	output := captureOutput(func() {
		defer func() {
			if r := recover(); r != nil {
				if r != "exit" {
					panic(r)
				}
			}
		}()
		RealMain()
	})

	return exitCode, output
}

func TestRealMain(t *testing.T) {
	// Save original args
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	t.Setenv("BADGER_PATH", filepath.Join(t.TempDir(), "badger"))
	t.Setenv("STORE_DRIVER", "badger")
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"blogposts"},
			expectedExit:   1,
			expectedOutput: "Usage: blogposts <command>",
		},
		{
			name:           "help command",
			args:           []string{"blogposts", "help"},
			expectedExit:   0,
			expectedOutput: "Usage: blogposts <command> [options]",
		},
		{
			name:           "version command",
			args:           []string{"blogposts", "version"},
			expectedExit:   0,
			expectedOutput: "blogposts version " + CliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"blogposts", "unknown"},
			expectedExit:   1,
			expectedOutput: "Unknown command: unknown",
		},
		{
			name:           "db without subcommand",
			args:           []string{"blogposts", "db"},
			expectedExit:   1,
			expectedOutput: "Usage: blogposts db <command>",
		},
		{
			name:           "db seed",
			args:           []string{"blogposts", "db", "seed", "-n", "2"},
			expectedExit:   0,
			expectedOutput: "Seeded 2 posts",
		},
		{
			name:           "db count",
			args:           []string{"blogposts", "db", "count"},
			expectedExit:   0,
			expectedOutput: "2 posts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			exitCode, output := callMain()

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	t.Setenv("STORE_DRIVER", "sqlite")
	os.Args = []string{"blogposts", "db", "count"}

	exitCode, output := callMain()
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, output, "unknown STORE_DRIVER")
}

func TestPrintHelp(t *testing.T) {
	output := captureOutput(func() {
		printHelp()
	})

	assert.Contains(t, output, "Usage: blogposts")
	assert.Contains(t, output, "help")
	assert.Contains(t, output, "version")
	assert.Contains(t, output, "serve")
	assert.Contains(t, output, "db <command>")
	assert.Contains(t, output, "STORE_DRIVER")
}
