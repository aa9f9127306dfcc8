package storage

import "os"

// SetSyncFile swaps the sync step of Append and returns a func restoring it.
func SetSyncFile(fn func(*os.File) error) func() {
	prev := syncFile
	syncFile = fn
	return func() { syncFile = prev }
}
