package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lawbase/casedb/errs"
)

// Discover walks root recursively and returns every file whose extension
// matches ext, in lexical walk order so re-runs see the same sequence.
// Unreadable subdirectories are skipped and reported as warnings, a missing
// root is fatal.
func Discover(root, ext string) ([]string, []string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, errs.Wrap(errs.NotFound, err, "data path %s", root)
	}
	if !info.IsDir() {
		return nil, nil, errs.New(errs.NotFound, "data path %s is not a directory", root)
	}
	paths := make([]string, 0)
	warnings := make([]string, 0)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, path+": "+err.Error())
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, warnings, nil
}
