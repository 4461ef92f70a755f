//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runStage builds the binary if needed and invokes one pipeline subcommand.
func runStage(stage string, args ...string) error {
	mg.Deps(Build)
	cmd := exec.Command(filepath.Join(binDir, binName), append([]string{stage}, args...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Resolve maps the input journal list to OpenAlex sources.
func Resolve() error {
	return runStage("resolve")
}

// Extract fetches raw work records for every resolved journal.
func Extract() error {
	return runStage("extract")
}

// Scan matches keyword rules against reconstructed abstracts.
func Scan() error {
	return runStage("scan")
}

// Aggregate computes the keyword prevalence table.
func Aggregate() error {
	return runStage("aggregate")
}

// Visualize renders the trend figures.
func Visualize() error {
	return runStage("visualize")
}

// Pipeline runs every stage in order.
func Pipeline() error {
	return runStage("run")
}
