package util

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
)

// BufferSize is the size of the read buffer used by HashFile.
const BufferSize = 8 * 1024

// An HashWriter calculates the SHA256 hash of the bytes written to it.
type HashWriter struct {
	io.Writer
	sha256 hash.Hash
}

// NewHashWriterPlain returns a HashWriter that does not wrap an output
// stream. It will just compute the checksum of the data written to it.
func NewHashWriterPlain() *HashWriter {
	hw := &HashWriter{
		sha256: sha256.New(),
	}
	hw.Writer = hw.sha256
	return hw
}

// HexSHA256 returns the hash written so far as 64 lowercase hex characters.
func (hw *HashWriter) HexSHA256() string {
	return hex.EncodeToString(hw.sha256.Sum(nil))
}

// HashBytes returns the lowercase hex SHA256 of b.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// HashFile streams the named file through SHA256 using a fixed size buffer
// and returns the lowercase hex digest.
func HashFile(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	hw := NewHashWriterPlain()
	buf := make([]byte, BufferSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			hw.Write(buf[:n])
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
	}
	return hw.HexSHA256(), nil
}
