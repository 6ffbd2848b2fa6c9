// Package wire compresses world snapshots for transport, grounded in the
// teacher's utils.go compressLZ4/decompressLZ4 helpers and its sync.Pool
// buffer reuse pattern (bufferPool in globals.go).
package wire

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var bufferPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// CompressLZ4 returns an LZ4-compressed copy of src, suitable for the
// snapshot body served by GET /world/snapshot (SPEC_FULL §10.2).
func CompressLZ4(src []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zw := lz4.NewWriter(buf)
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// DecompressLZ4 reverses CompressLZ4.
func DecompressLZ4(src []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	zr := lz4.NewReader(bytes.NewReader(src))
	if _, err := io.Copy(buf, zr); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
