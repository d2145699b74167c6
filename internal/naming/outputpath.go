package naming

import (
	"os"
	"path/filepath"
)

// OutputPath returns the corrected copy's path: the input's directory with
// prefix prepended to the base name.
//
//	clips/MVI_0001.MOV, "TC_" -> clips/TC_MVI_0001.MOV
func OutputPath(input, prefix string) string {
	return filepath.Join(filepath.Dir(input), prefix+filepath.Base(input))
}

// Exists reports whether something is already present at path. Errors
// other than "not found" count as present so the caller never overwrites
// a file it could not inspect.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !os.IsNotExist(err)
}
