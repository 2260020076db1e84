package bagit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ndlib/baggie/util"
)

// declaration returns the contents of the bagit.txt file.
func declaration() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, "BagIt-Version: %s\n", Version)
	fmt.Fprintf(&out, "Tag-File-Character-Encoding: UTF-8\n")
	return out.Bytes()
}

// bagInfo serializes tags in the order given. Values are not wrapped.
func bagInfo(tags []Tag) []byte {
	var out bytes.Buffer
	for _, t := range tags {
		fmt.Fprintf(&out, "%s: %s\n", t.Name, t.Value)
	}
	return out.Bytes()
}

func payloadOxum(octets int64, count int) string {
	return fmt.Sprintf("%d.%d", octets, count)
}

// manifestLine formats one manifest entry. The 2 spaces is to be identical to
// the GNU sha256sum output.
func manifestLine(sum, name string) string {
	return sum + "  " + name
}

// manifest collects manifest lines as payload files are hashed.
type manifest []string

func (m *manifest) add(sum, name string) {
	*m = append(*m, manifestLine(sum, name))
}

// bytes returns the manifest file contents: the lines sorted bytewise and
// each terminated by a newline. An empty manifest is a single newline.
func (m manifest) bytes() []byte {
	lines := append([]string(nil), m...)
	sort.Strings(lines)
	return []byte(strings.Join(lines, "\n") + "\n")
}

// tagManifest returns the contents of the tag manifest covering the given
// files, keyed by file name. Entries are ordered by file name.
func tagManifest(files map[string][]byte) []byte {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, manifestLine(util.HashBytes(files[name]), name))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// writeTagFile creates the file name inside dir with the given contents. It
// refuses to replace a file which already exists.
func writeTagFile(dir, name string, content []byte) error {
	fname := filepath.Join(dir, name)
	// pass the O_EXCL flag explicitly to prevent overwriting
	// already existing files
	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermissions)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	return err
}
