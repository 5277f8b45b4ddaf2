package ontomisc

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "plain"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "compress"
	case DataTypeBZip2:
		return "bzip2"
	}
	return "invalid"
}

// Magic numbers, per https://stackoverflow.com/a/19127748/199475
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZ, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
}

// DetectDataType peeks at the first bytes of r and reports which compression,
// if any, the stream uses. Streams shorter than a signature (including empty
// ones) are treated as uncompressed.
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

Outer:
	for _, candidate := range byteCodeSigs {
		if len(buff) < len(candidate.sig) {
			continue
		}
		for position := range candidate.sig {
			if buff[position] != candidate.sig[position] {
				continue Outer
			}
		}
		return candidate.dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress sniffs the compression of src, rewinds it, and returns a
// reader over the decompressed contents. Closing the returned reader never
// closes src; the caller still owns it.
func MaybeDecompress(src io.ReadSeeker) (io.ReadCloser, DataType, error) {
	dt, err := DetectDataType(src)
	if err != nil {
		return nil, dt, pfx.Err(err)
	}

	// Rewind before handing src to a decoder, since most of them read their
	// header eagerly.
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, dt, pfx.Err(err)
	}

	switch dt {
	case DataTypeGzip:
		r, err := gzip.NewReader(src)
		if err != nil {
			return nil, dt, pfx.Err(err)
		}
		return r, dt, nil
	case DataTypeZip:
		// Only the first archive member is read.
		zr := zipstream.NewReader(src)
		if _, err := zr.Next(); err != nil {
			return nil, dt, pfx.Err(err)
		}
		return io.NopCloser(zr), dt, nil
	case DataTypeBZip2:
		return io.NopCloser(bzip2.NewReader(src)), dt, nil
	case DataTypeXZ:
		r, err := xz.NewReader(src, 0)
		if err != nil {
			return nil, dt, pfx.Err(err)
		}
		return io.NopCloser(r), dt, nil
	case DataTypeZ:
		return nil, dt, pfx.Err(fmt.Errorf("unix compress (.Z) streams are not supported"))
	}

	return io.NopCloser(src), dt, nil
}
