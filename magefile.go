//go:build mage

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

/* Env vars
RUN - passed to go test -run.
TARGET - tinygo target used by Flash, e.g. the board name of the display kit.
*/

var Default = Build

// builds the host binaries
func Build(ctx context.Context) error {
	mg.CtxDeps(ctx, Vet)
	if err := sh.RunV("go", "build", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", "bin/tftsim", "./cmd/tftsim")
}

// runs go vet
func Vet(ctx context.Context) error {
	return sh.RunV("go", "vet", "./...")
}

// runs the unit tests
func Test(ctx context.Context) error {
	args := []string{"test", "-count=1"}
	if run, ok := os.LookupEnv("RUN"); ok {
		args = append(args, "-run", run)
	}
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

// opens the desktop simulator
func Sim(ctx context.Context) error {
	return sh.RunV("go", "run", "./cmd/tftsim")
}

// builds the firmware with tinygo and flashes it to the board named by TARGET
func Flash(ctx context.Context) error {
	target, ok := os.LookupEnv("TARGET")
	if !ok {
		return fmt.Errorf("env var TARGET must be set")
	}
	return sh.RunV("tinygo", "flash", "-target="+target, ".")
}
