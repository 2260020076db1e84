//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package bagit

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestIsCrossDevice(t *testing.T) {
	var table = []struct {
		err   error
		cross bool
	}{
		{nil, false},
		{&os.LinkError{Op: "rename", Old: "a", New: "b", Err: unix.EXDEV}, true},
		{&os.LinkError{Op: "rename", Old: "a", New: "b", Err: unix.EACCES}, false},
		{os.ErrNotExist, false},
	}
	for _, test := range table {
		if got := isCrossDevice(test.err); got != test.cross {
			t.Errorf("Got %v for %v, expected %v", got, test.err, test.cross)
		}
	}
}
