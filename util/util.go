package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// DirMode is the default FileMode used when creating directories.
const DirMode = 0775

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// DirExists checks whether some directory exists.
func DirExists(dir string) bool {
	stat, err := os.Stat(dir)
	return err == nil && stat.IsDir()
}

// PathExists checks whether anything (file, directory, symlink target) exists at `p`.
func PathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// RemovePath deletes a directory recursively or a single file. Missing paths are ignored.
func RemovePath(p string) error {
	stat, err := os.Lstat(p)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to stat '%s'", p)
	}
	if stat.IsDir() {
		err = os.RemoveAll(p)
	} else {
		err = os.Remove(p)
	}
	return errors.Wrapf(err, "failed to remove '%s'", p)
}

// WriteFileAtomic writes `data` to a temporary file next to `p` and renames it into place,
// so `p` is either left untouched or holds the complete new content.
func WriteFileAtomic(p string, data []byte) error {
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory '%s'", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file for '%s'", p)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write '%s'", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close '%s'", tmpName)
	}
	if err := os.Chmod(tmpName, FileMode); err != nil {
		return errors.Wrapf(err, "failed to set mode of '%s'", tmpName)
	}
	return errors.Wrapf(os.Rename(tmpName, p), "failed to move '%s' into place", p)
}

// ExpandVars replaces $VAR and ${VAR} with the value of the environment variable.
// References to variables that are not set are left untouched.
func ExpandVars(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		start := i
		var name string
		if s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				break
			}
			name = s[i+2 : i+2+end]
			i += 2 + end
		} else {
			j := i + 1
			for j < len(s) && isVarChar(s[j]) {
				j++
			}
			if j == i+1 {
				b.WriteByte('$')
				continue
			}
			name = s[i+1 : j]
			i = j - 1
		}

		if value, ok := os.LookupEnv(name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[start : i+1])
		}
	}
	return b.String()
}

func isVarChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// SplitList splits comma-separated list arguments and drops empty elements.
func SplitList(args []string) []string {
	result := []string{}
	for _, arg := range args {
		for _, elem := range strings.Split(arg, ",") {
			if elem = strings.TrimSpace(elem); elem != "" {
				result = append(result, elem)
			}
		}
	}
	return result
}
