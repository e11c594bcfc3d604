// Copyright (c) 2025 BVK Chaitanya

// Package envfile loads environment variables from a KEY=VALUE file.
package envfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

type options struct {
	variableNamePrefix string

	searchDirs []string

	overwriteIfExists bool
}

// UpdateEnv updates current process's environment with the values read from
// the env filename found in the user's home directory. The location of the env
// file search path and other behaviors can be changed by the input options.
// Returns the path of the file loaded, which is empty when no file is found.
//
// Lines starting with # are ignored. NO shell escaping or expansion is
// performed on the values.
func UpdateEnv(filename string, opts ...Option) (string, error) {
	if strings.ContainsRune(filename, os.PathSeparator) {
		return "", fmt.Errorf("file name contains path separator: %w", os.ErrInvalid)
	}
	var fopts options
	for _, v := range opts {
		if err := v.apply(&fopts); err != nil {
			return "", err
		}
	}

	dirs := fopts.searchDirs
	if len(dirs) == 0 {
		user, err := user.Current()
		if err != nil {
			return "", err
		}
		if len(user.HomeDir) == 0 {
			return "", fmt.Errorf("could not determine current user's home directory")
		}
		dirs = []string{user.HomeDir}
	}

	for _, dir := range dirs {
		fpath := filepath.Join(dir, filename)
		data, err := os.ReadFile(fpath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return "", err
			}
			continue
		}
		if err := apply(data, &fopts); err != nil {
			return "", fmt.Errorf("%s: %w", fpath, err)
		}
		return fpath, nil
	}
	return "", nil
}

func apply(data []byte, fopts *options) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 1; scanner.Scan(); i++ {
		line := string(bytes.TrimSpace(scanner.Bytes()))
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		p := strings.IndexRune(line, '=')
		if p == -1 {
			return fmt.Errorf("invalid/unrecognized variable assignment on line %d: %w", i, os.ErrInvalid)
		}
		key, value := strings.TrimSpace(line[:p]), strings.TrimSpace(line[p+1:])
		if !prefixRe.MatchString(key) {
			return fmt.Errorf("invalid environment variable name %q on line %d: %w", key, i, os.ErrInvalid)
		}
		key = fopts.variableNamePrefix + key
		if len(os.Getenv(key)) != 0 && !fopts.overwriteIfExists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}
