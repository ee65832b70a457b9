// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindOptions narrows FindFiles.
type FindOptions struct {
	// Extension the file name must end with. Required.
	Extension string
	// Prefix the file name must start with.
	Prefix string
	// Recursive descends into subdirectories.
	Recursive bool
}

// FindFiles searches root for files matching opts and returns their full
// paths in lexical order. A missing root yields no files.
func FindFiles(root string, opts FindOptions) ([]string, error) {
	if opts.Extension == "" {
		return nil, errors.New("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.HasSuffix(name, opts.Extension) && strings.HasPrefix(name, opts.Prefix) {
			files = append(files, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
