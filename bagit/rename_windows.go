package bagit

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// isCrossDevice reports whether err came from renaming across volumes.
func isCrossDevice(err error) bool {
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err == windows.ERROR_NOT_SAME_DEVICE
	}
	return false
}
