// Package bagit turns a directory into a BagIt bag in place. The existing
// contents of the directory are moved into a "data/" subdirectory, and the
// tag files bagit.txt, bag-info.txt, manifest-sha256.txt and
// tagmanifest-sha256.txt are written next to it.
//
// Only SHA256 manifests are produced. Fetch files and holey bags are not
// supported, nor is reading or verifying an existing bag. The output is
// deterministic: given the same tree and the same day, every tag file is
// byte-for-byte identical to a previous run. Only bag-info.txt depends on the
// date.
//
// Nothing is undone if bagging fails partway. The directory is left as it
// was when the error happened, so that no payload is ever deleted.
//
// The BagIt spec can be found at https://tools.ietf.org/html/draft-kunze-bagit-14.
package bagit

import (
	"fmt"
)

const (
	// Version is the version of the BagIt specification this package implements.
	Version = "0.97"

	// SoftwareVersion is the version of this bagger, reported in bag-info.txt.
	SoftwareVersion = "0.1.1"

	// DefaultAgent is the Bag-Software-Agent used when a Bagger has none.
	DefaultAgent = "baggie " + SoftwareVersion
)

// Names of the entries a bag has at its top level.
const (
	PayloadDir      = "data"
	DeclarationFile = "bagit.txt"
	ManifestFile    = "manifest-sha256.txt"
	BagInfoFile     = "bag-info.txt"
	TagManifestFile = "tagmanifest-sha256.txt"
)

const (
	dirPermissions  = 0775
	filePermissions = 0666
)

// Tag is a single line of the bag-info.txt file.
type Tag struct {
	Name  string
	Value string
}

// Kind classifies a BagError.
type Kind int

// The kinds of errors Bag returns.
const (
	IoError Kind = iota
	NotADirectory
	AlreadyABag
)

// BagError is returned by Bag. For IoError the underlying cause is in Err.
type BagError struct {
	Kind Kind
	Err  error
}

var (
	// ErrNotADirectory matches, using errors.Is, any BagError of kind
	// NotADirectory.
	ErrNotADirectory = &BagError{Kind: NotADirectory}

	// ErrAlreadyABag matches any BagError of kind AlreadyABag.
	ErrAlreadyABag = &BagError{Kind: AlreadyABag}
)

func (e *BagError) Error() string {
	switch e.Kind {
	case NotADirectory:
		return "Path is not a directory"
	case AlreadyABag:
		return "Directory appears to already be a bag"
	}
	return fmt.Sprintf("IO error: %v", e.Err)
}

// Unwrap returns the underlying cause, if any.
func (e *BagError) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel BagError of the same kind.
func (e *BagError) Is(target error) bool {
	t, ok := target.(*BagError)
	return ok && t.Err == nil && t.Kind == e.Kind
}

func ioError(err error) error {
	return &BagError{Kind: IoError, Err: err}
}
