package binser

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Storage is a byte region with a write cursor and a read cursor.
// Fixed and Growable are the two implementations; the Serializer only
// ever talks to this interface.
//
// A Storage is owned by one caller at a time and is not safe for concurrent use.
type Storage interface {
	// Append copies p at the write cursor and advances it by len(p).
	Append(p []byte) error
	// Consume fills p from the read cursor and advances it by len(p).
	Consume(p []byte) error

	// Len is the physical size: bytes written so far.
	Len() int
	// Cap is the size of the backing region.
	Cap() int
	// Remaining is the number of unread bytes before the end of the payload.
	Remaining() int
	// Bytes returns the payload. The slice aliases the region and is valid
	// until the next Append, Reset or LoadFrom.
	Bytes() []byte

	// Rewind moves the read cursor back to the start of the payload.
	Rewind()
	// Reset discards the payload and both cursors. Capacity is kept.
	Reset()
	// Clone deep-copies the payload. The clone's read cursor starts at zero.
	Clone() Storage

	// SaveTo writes the payload as one frame: 8-byte size then raw bytes.
	SaveTo(w io.Writer) (int64, error)
	// LoadFrom replaces the payload with one frame read from r and rewinds.
	LoadFrom(r io.Reader) (int64, error)
}

var (
	_ Storage = (*Fixed)(nil)
	_ Storage = (*Growable)(nil)
)

// SaveFile writes st's payload frame to path, truncating any existing file.
func SaveFile(path string, st Storage) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("binser: save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("binser: save %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err = st.SaveTo(w); err != nil {
		return fmt.Errorf("binser: save %s: %w", path, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("binser: save %s: %w", path, err)
	}
	return nil
}

// LoadFile replaces st's payload with the frame stored at path.
func LoadFile(path string, st Storage) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("binser: load %s: %w", path, err)
	}
	defer f.Close()

	if _, err := st.LoadFrom(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("binser: load %s: %w", path, err)
	}
	return nil
}
