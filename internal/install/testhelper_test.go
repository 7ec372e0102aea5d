package install

import (
	"os"
	"path/filepath"
)

// faultSystem injects errors for chosen operations and paths and passes
// everything else through to the embedded System.
type faultSystem struct {
	System
	errs map[string]error
}

func newFaultSystem(base System) *faultSystem {
	return &faultSystem{System: base, errs: map[string]error{}}
}

func (f *faultSystem) failOn(op string, path string, err error) {
	f.errs[op+":"+filepath.Clean(path)] = err
}

func (f *faultSystem) fault(op string, path string) error {
	return f.errs[op+":"+filepath.Clean(path)]
}

func (f *faultSystem) MkdirAll(path string, perm os.FileMode) error {
	if err := f.fault("mkdir", path); err != nil {
		return err
	}
	return f.System.MkdirAll(path, perm)
}

func (f *faultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err := f.fault("write", filename); err != nil {
		return err
	}
	return f.System.WriteFileAtomic(filename, data, perm)
}

// CopyFile fails when the destination has an injected error.
func (f *faultSystem) CopyFile(src string, dst string) (int64, error) {
	if err := f.fault("copy", dst); err != nil {
		return 0, err
	}
	return f.System.CopyFile(src, dst)
}
