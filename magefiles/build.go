//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binary = "bin/topdown"

// Tidies the module and builds the game binary into bin/.
func (Build) Game() error {
	if err := goModTidy(); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binary, "."), withStream())
	return err
}

// Runs go vet on every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs the unit tests, bypassing the test cache.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withEnv("GOFLAGS", "-count=1"), withStream())
	return err
}
