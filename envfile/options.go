// Copyright (c) 2025 BVK Chaitanya

package envfile

import (
	"fmt"
	"os"
	"regexp"
)

type Option interface {
	apply(*options) error
}

type optionFunc func(*options) error

func (v optionFunc) apply(opts *options) error {
	return v(opts)
}

// SearchDirs option searches for the environment file in the given
// directories in order. User's home directory is searched only when no search
// directories are given.
func SearchDirs(dirs ...string) Option {
	return optionFunc(func(opts *options) error {
		for _, dir := range dirs {
			if len(dir) == 0 {
				return fmt.Errorf("search directory cannot be empty: %w", os.ErrInvalid)
			}
		}
		opts.searchDirs = append(opts.searchDirs, dirs...)
		return nil
	})
}

// SearchCurrentDir option adds the current working directory to the search
// path. Directories are searched in the order of the options.
func SearchCurrentDir() Option {
	return optionFunc(func(opts *options) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		opts.searchDirs = append(opts.searchDirs, cwd)
		return nil
	})
}

var prefixRe = regexp.MustCompile("^[a-zA-Z][0-9a-zA-Z_]*$")

// VariableNamePrefix option adds input prefix to all variable names defined in
// the envfile.
func VariableNamePrefix(prefix string) Option {
	return optionFunc(func(opts *options) error {
		if !prefixRe.MatchString(prefix) {
			return fmt.Errorf("variable name prefix has invalid characters: %w", os.ErrInvalid)
		}
		opts.variableNamePrefix = prefix
		return nil
	})
}

// OverwriteIfExists options allows to overwrite or not-overwrite the current
// value for an environment variable that already has a non-empty value.
func OverwriteIfExists(overwrite bool) Option {
	return optionFunc(func(opts *options) error {
		opts.overwriteIfExists = overwrite
		return nil
	})
}
