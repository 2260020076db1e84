package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestHashWriter(t *testing.T) {
	const input = "hello1 hello2 hello3 hello4 hello5abcdefghijklmnopqrstuvwxyz0123456789"
	const goal = "fef15edd82b33633582c723562d192fec2d2003df12d4aeac89df17c279a1658"
	hw := NewHashWriterPlain()
	// split writes hash the same as one write
	hw.Write([]byte(input[:10]))
	hw.Write([]byte(input[10:]))
	if got := hw.HexSHA256(); got != goal {
		t.Errorf("Got %s, expected %s", got, goal)
	}
}

func TestHashBytes(t *testing.T) {
	var table = []struct{ input, output string }{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"A", "559aead08264d5795d3909718cdd05abd49572e84fe55590eef31a88a08fdffd"},
		{"B", "df7e70e5021544f4834bbee64a9e3789febc4be81470df629cad6ddb03320a5c"},
	}
	for _, test := range table {
		out := HashBytes([]byte(test.input))
		if out != test.output {
			t.Errorf("Received %s, expected %s", out, test.output)
		}
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	// larger than one buffer so the read loop runs more than once
	content := bytes.Repeat([]byte("0123456789abcdef"), BufferSize/4)
	name := filepath.Join(dir, "big")
	if err := os.WriteFile(name, content, 0644); err != nil {
		t.Fatal(err)
	}
	h, err := HashFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if h != HashBytes(content) {
		t.Errorf("Got %s, expected %s", h, HashBytes(content))
	}

	_, err = HashFile(filepath.Join(dir, "missing"))
	if !os.IsNotExist(err) {
		t.Errorf("Got %v, expected a not exist error", err)
	}
}
