// Command mazecheck validates maze files in bulk and generates mazes offline.
//
//	mazecheck validate <dir>
//	mazecheck generate [-width 15] [-height 15] [-name NAME] [-seed N] [-ascii]
//
// validate exits 0 when every *.json file under dir is a well-formed, solvable
// maze and 1 otherwise.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/validation"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage: mazecheck validate <dir> | mazecheck generate [flags]")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log, err := logger.New("MAZECHECK", config.ColorBlue, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if len(args) == 0 {
		log.Error(errUsage.Error())
		return exitUsage
	}

	switch args[0] {
	case "validate":
		return validateCmd(args[1:], stdout, log)
	case "generate":
		return generateCmd(args[1:], stdout, stderr, log)
	default:
		log.Error(fmt.Sprintf("unknown command %q; %v", args[0], errUsage))
		return exitUsage
	}
}

func validateCmd(args []string, stdout io.Writer, log *logger.Logger) int {
	if len(args) != 1 {
		log.Error("usage: mazecheck validate <dir>")
		return exitUsage
	}

	summary, err := validation.ValidateFS(os.DirFS(args[0]), validation.Check)
	if err != nil {
		log.Error(fmt.Sprintf("Reading %s: %v", args[0], err))
		return exitInvalid
	}

	for _, r := range summary.Results {
		if r.Success {
			fmt.Fprintf(stdout, "PASS %s\n", r.Label)
			continue
		}
		fmt.Fprintf(stdout, "FAIL %s\n", r.Label)
		for _, msg := range r.Errors {
			fmt.Fprintf(stdout, "  - %s\n", msg)
		}
	}
	fmt.Fprintf(stdout, "%d passed, %d failed\n", summary.Passed, summary.Failed)

	if !summary.OK() {
		return exitInvalid
	}
	return exitOK
}

func generateCmd(args []string, stdout, stderr io.Writer, log *logger.Logger) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.Int("width", 15, "maze width in cells")
	height := fs.Int("height", 15, "maze height in cells")
	name := fs.String("name", "", "display name of the maze")
	seed := fs.Int64("seed", 0, "random seed; 0 picks a random maze")
	ascii := fs.Bool("ascii", false, "print the grid instead of the JSON record")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	opts := &maze.Options{Logger: log}
	if *seed != 0 {
		opts.Rand = rand.New(rand.NewSource(*seed))
	}

	m, err := maze.NewGenerator(opts).Generate(*width, *height)
	if err != nil {
		log.Error(err.Error())
		return exitInvalid
	}

	if *ascii {
		fmt.Fprint(stdout, m.String())
		return exitOK
	}

	if *name == "" {
		*name = fmt.Sprintf("maze-%dx%d", *width, *height)
	}
	out, err := json.MarshalIndent(maze.NewRecord(*name, m), "", "  ")
	if err != nil {
		log.Error(fmt.Sprintf("Encoding maze: %v", err))
		return exitInvalid
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}
