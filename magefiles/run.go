//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the game against the data/ asset directory.
func (Run) Game() error {
	fmt.Println("Run game...")
	if _, err := executeCmd("go", withArgs("run", ".", "--assets", "data"), withStream()); err != nil {
		return err
	}
	return nil
}

// Vets, then runs the game with debug logging.
func (Run) Debug() error {
	mg.Deps(Build.Vet)
	_, err := executeCmd("go", withArgs("run", ".", "--assets", "data", "--log-level", "debug"), withStream())
	return err
}
