package textfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/textbuf"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// ErrNotText is flagged for files which are not regular files or do not
// contain valid UTF-8.
var ErrNotText = errors.New("textfile: not a UTF-8 text file")

// textFile represents an OS file which will be loaded into a version cache.
type textFile struct {
	path string      // file name
	info os.FileInfo // result from Stat(path)
	file *os.File    // file handle
}

// fragment is a piece of a file, loaded by the background reader.
type fragment struct {
	pos     int64
	content []byte
	err     error
}

// Load reads a file, which must be a UTF-8 text file, into a new version cache.
// opts configure the version cache.
func Load(name string, opts ...textbuf.Option) (*textbuf.VersionCache, error) {
	text, err := ReadText(name)
	if err != nil {
		return nil, err
	}
	return textbuf.FromString(text, opts...)
}

// Reload re-reads a file into an existing version cache. This discards the
// history of the cache.
func Reload(vc *textbuf.VersionCache, name string) (*textbuf.Snapshot, error) {
	text, err := ReadText(name)
	if err != nil {
		return nil, err
	}
	return vc.Reload(text), nil
}

// ReadText reads the complete text of a file and checks that it is valid UTF-8.
func ReadText(name string) (string, error) {
	tf, err := openFile(name)
	if err != nil {
		return "", err
	}
	defer tf.file.Close()
	size := tf.info.Size()
	var sb strings.Builder
	sb.Grow(int(size))
	for frag := range tf.loadFragments(fragmentSize(size)) {
		if frag.err != nil {
			return "", fmt.Errorf("error loading text fragment at %d of %s: %w", frag.pos, name, frag.err)
		}
		sb.Write(frag.content)
	}
	text := sb.String()
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: %s", ErrNotText, name)
	}
	tracer().Debugf("loaded %d bytes from %s", len(text), name)
	return text, nil
}

// openFile opens an OS file and collect some useful information on it,
// checking for error conditions.
func openFile(name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotText, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	return &textFile{path: name, info: fi, file: file}, nil
}

// fragmentSize selects a fragment length suitable for a file of the given size.
func fragmentSize(size int64) int64 {
	switch {
	case size < 64:
		return max(size, 1)
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// loadFragments starts a reader which loads the file fragment by fragment,
// in order. The channel is closed after the last fragment or the first error.
func (tf *textFile) loadFragments(fragSize int64) <-chan fragment {
	ch := make(chan fragment, 4)
	go func() {
		defer close(ch)
		size := tf.info.Size()
		for pos := int64(0); pos < size; pos += fragSize {
			buf := make([]byte, min(fragSize, size-pos))
			cnt, err := tf.file.ReadAt(buf, pos)
			if err != nil && !(errors.Is(err, io.EOF) && cnt == len(buf)) {
				ch <- fragment{pos: pos, err: err}
				return
			}
			ch <- fragment{pos: pos, content: buf}
		}
	}()
	return ch
}
