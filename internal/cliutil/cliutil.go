package cliutil

import "os"

// IsTty reports whether the file is attached to a terminal. Used to decide
// whether reading from stdin makes sense when no file arguments are given.
func IsTty(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
