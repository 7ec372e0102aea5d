// Package fsutil provides crash-safe file writes shared by the installer and
// the registration ledger.
package fsutil

import (
	"io"
	"os"

	"github.com/dchest/safefile"
)

// WriteFileAtomic writes data to filename through a temporary file in the same
// directory and renames it into place, so readers never observe a partial file.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	f, err := safefile.Create(filename, perm)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Commit()
}

// CopyFile copies src to dst atomically, preserving the source permission bits.
// It returns the number of bytes copied.
func CopyFile(src string, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	out, err := safefile.Create(dst, info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, err
	}
	return n, out.Commit()
}
