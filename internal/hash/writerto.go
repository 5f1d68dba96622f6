package hash

import (
	"encoding/binary"
	"io"
)

// WriterToWithDomain represents a type writing itself, and knowing its domain.
//
// Providing a domain string lets us distinguish the output of different types
// implementing this same interface.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, which should be unique for each implementor
	Domain() string
}

// writeWithDomain writes out `len(domain) ‖ domain ‖ len(data) ‖ data`.
//
// Both lengths are 8 byte big-endian, so that the encoding of a sequence of
// objects is injective.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	domain := []byte(object.Domain())
	if err := writeLength(w, len(domain)); err != nil {
		return err
	}
	if _, err := w.Write(domain); err != nil {
		return err
	}

	var body lengthCounter
	if _, err := object.WriteTo(&body); err != nil {
		return err
	}
	if err := writeLength(w, body.n); err != nil {
		return err
	}
	_, err := object.WriteTo(w)
	return err
}

func writeLength(w io.Writer, n int) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	_, err := w.Write(buf[:])
	return err
}

// lengthCounter is an io.Writer which only counts what goes through it.
type lengthCounter struct {
	n int
}

func (c *lengthCounter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

// BytesWithDomain is a useful wrapper to annotate some chunk of data with a domain.
//
// The intention is to wrap some data using this struct, and then call WriteAny,
// or use this struct as a WriterToWithDomain somewhere else.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// WriteTo implements io.WriterTo.
func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	if b.Bytes == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
