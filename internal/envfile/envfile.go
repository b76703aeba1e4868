// Package envfile loads GIT_CC_* settings from .env files before the
// configuration is read. Variables already set in the environment win.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables not already in the environment.
// Returns nil if the file doesn't exist. Returns an error only for read or
// parse failures.
func Load(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// LoadAll loads each path in order. The first file to define a variable
// wins because later files never override. Errors are collected, not fatal.
func LoadAll(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := Load(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
