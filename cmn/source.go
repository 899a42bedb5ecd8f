package cmn

import (
	"fmt"
	"os"
	"path"
	"strings"
)

/*
	walks sourcePath (file or directory, recursively) and calls cb for every
	file ending with suffix. A single file path is always visited.
	Directory entries come back sorted by name, so the order is stable.
*/
func ParserIterateOverSource(
	sourcePath string,
	suffix string,
	cb func(path string, fc []byte, args interface{}) error,
	args interface{}) error {

	var err error
	var fi os.FileInfo
	var di []os.DirEntry
	var fc []byte

	if fi, err = os.Stat(sourcePath); err != nil {
		return err
	}

	if fi.IsDir() {
		if di, err = os.ReadDir(sourcePath); err != nil {
			return err
		}
		for _, e := range di {
			p := path.Join(sourcePath, e.Name())
			if !e.IsDir() && !strings.HasSuffix(e.Name(), suffix) {
				continue
			}
			if err = ParserIterateOverSource(p, suffix, cb, args); err != nil {
				return err
			}
		}
		return nil
	}

	if fc, err = os.ReadFile(sourcePath); err != nil {
		return err
	}
	if len(fc) == 0 {
		return fmt.Errorf("%s - empty file content", sourcePath)
	}
	return cb(sourcePath, fc, args)
}
