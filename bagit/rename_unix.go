//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package bagit

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// isCrossDevice reports whether err came from renaming across file systems.
func isCrossDevice(err error) bool {
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err == unix.EXDEV
	}
	return false
}
