// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Source discovery and output naming.

package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Discover returns every regular file under root whose name ends in ext,
// skipping directories named in exclude. Paths are sorted. A root that is
// itself a matching file is returned alone.
func Discover(root, ext string, exclude []string) ([]string, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}

	sort.Strings(files)
	return files, nil
}

// OutputPath names the translation of in: its trailing srcExt is replaced
// with outExt. Directory components are left alone.
func OutputPath(in, srcExt, outExt string) string {
	return strings.TrimSuffix(in, srcExt) + outExt
}

func isExcluded(path, root string, exclude []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, name := range exclude {
			if part == name {
				return true
			}
		}
	}
	return false
}
