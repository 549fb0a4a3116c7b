//go:build !linux && !darwin

package profilelock

import "os"

// Advisory locking is only implemented on unix; elsewhere the lock file
// is still written but not enforced.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
