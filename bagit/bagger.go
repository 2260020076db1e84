package bagit

import (
	"os"
	"path/filepath"
	"time"

	"github.com/facebookgo/clock"
	"github.com/facebookgo/stats"
	"github.com/pkg/errors"

	"github.com/ndlib/baggie/progress"
	"github.com/ndlib/baggie/util"
)

// A Bagger converts directories into bags. The zero value is ready to use.
// A Bagger holds no state between calls, but it does not guard against two
// calls working on the same directory.
type Bagger struct {
	// Agent is written as the Bag-Software-Agent. DefaultAgent is used
	// if it is empty.
	Agent string

	// Clock supplies the Bagging-Date. The wall clock is used if nil.
	Clock clock.Clock

	// Stats, if not nil, receives the counters "bagit.files" and
	// "bagit.bytes" and the timer "bagit.bag".
	Stats stats.Client
}

// Create bags the directory at path using a default Bagger. See Bagger.Bag.
func Create(path string, sink progress.Sink) error {
	var b Bagger
	return b.Bag(path, sink)
}

// Bag converts the directory at path into a bag, in place. Progress events
// are sent to sink, which may be nil. Bag does all its work on the calling
// goroutine and returns once the bag is complete or an error happens.
//
// Symbolic links are never followed below path. They are moved into the
// payload along with everything else, but they are not hashed and are not
// counted in the Payload-Oxum.
//
// The returned error is always a *BagError.
func (b *Bagger) Bag(path string, sink progress.Sink) error {
	if b.Stats != nil {
		defer b.Stats.BumpTime("bagit.bag").End()
	}
	if sink == nil {
		sink = progress.Discard
	}
	if err := validate(path); err != nil {
		return err
	}

	total, err := countFiles(path)
	if err != nil {
		return ioError(err)
	}
	sink.Emit(progress.Started{TotalFiles: total})

	dataDir := filepath.Join(path, PayloadDir)
	err = os.Mkdir(dataDir, dirPermissions)
	if err != nil {
		return ioError(err)
	}

	err = movePayload(path, dataDir, sink)
	if err != nil {
		return ioError(err)
	}

	m, octets, count, err := hashPayload(path, dataDir, sink)
	if err != nil {
		return ioError(err)
	}
	if b.Stats != nil {
		b.Stats.BumpSum("bagit.files", float64(count))
		b.Stats.BumpSum("bagit.bytes", float64(octets))
	}

	// each tag file is kept in memory so the tag manifest can be computed
	// from exactly what was written
	tagfiles := make(map[string][]byte)
	tagfiles[DeclarationFile] = declaration()
	tagfiles[ManifestFile] = m.bytes()
	tagfiles[BagInfoFile] = bagInfo([]Tag{
		{"Bag-Software-Agent", b.agent()},
		{"Bagging-Date", b.now().Format("2006-01-02")},
		{"Payload-Oxum", payloadOxum(octets, count)},
	})
	for _, name := range []string{DeclarationFile, ManifestFile, BagInfoFile} {
		err = writeTagFile(path, name, tagfiles[name])
		if err != nil {
			return ioError(errors.Wrapf(err, "writing %s", name))
		}
	}
	err = writeTagFile(path, TagManifestFile, tagManifest(tagfiles))
	if err != nil {
		return ioError(errors.Wrapf(err, "writing %s", TagManifestFile))
	}

	sink.Emit(progress.Done{Path: path})
	return nil
}

func (b *Bagger) agent() string {
	if b.Agent == "" {
		return DefaultAgent
	}
	return b.Agent
}

// now returns the current local time.
func (b *Bagger) now() time.Time {
	if b.Clock == nil {
		return time.Now()
	}
	return b.Clock.Now().Local()
}

// validate checks path is a directory which does not already look like a
// bag. It does not change anything on disk.
func validate(path string) error {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return &BagError{Kind: NotADirectory, Err: err}
	}
	for _, name := range []string{DeclarationFile, PayloadDir} {
		_, err = os.Lstat(filepath.Join(path, name))
		if err == nil {
			return &BagError{Kind: AlreadyABag}
		} else if !os.IsNotExist(err) {
			return ioError(err)
		}
	}
	return nil
}

// countFiles returns the number of regular files anywhere below root.
func countFiles(root string) (int, error) {
	// Walk does not descend into a symlink given as its root
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return 0, err
	}
	var n int
	err = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			n++
		}
		return nil
	})
	return n, err
}

// movePayload renames every entry at the top of root, except dataDir, into
// dataDir. Entries are moved in name order.
func movePayload(root, dataDir string, sink progress.Sink) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	var i int
	for _, e := range entries {
		name := e.Name()
		if name == PayloadDir {
			continue
		}
		i++
		sink.Emit(progress.Moving{Current: i, Filename: name})
		err = os.Rename(filepath.Join(root, name), filepath.Join(dataDir, name))
		if isCrossDevice(err) {
			return errors.Wrapf(err, "%s is on a different file system", name)
		} else if err != nil {
			return errors.Wrapf(err, "moving %s", name)
		}
	}
	return nil
}

// hashPayload checksums every regular file under dataDir. It returns the
// payload manifest along with the total size and number of the files.
func hashPayload(root, dataDir string, sink progress.Sink) (m manifest, octets int64, count int, err error) {
	err = filepath.Walk(dataDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		sink.Emit(progress.Checksumming{Current: count + 1, Filename: name})
		sum, err := util.HashFile(p)
		if err != nil {
			return errors.Wrapf(err, "checksumming %s", name)
		}
		octets += info.Size()
		count++
		m.add(sum, name)
		return nil
	})
	return
}
