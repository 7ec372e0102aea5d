//go:build !windows

package ledger

// DefaultStore returns the file store used on systems without a registry.
func DefaultStore() (Store, error) {
	store, err := defaultFileStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}
