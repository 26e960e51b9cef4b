package columnio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/segmentio/columnio-go/compress"
)

// Page layout, one page per column:
//
//	column index     uint32
//	number of values uint32
//	number of nulls  uint32
//	codec code       uint8
//	compressed size  uint32
//	payload          compressed(repetition levels, definition levels, plain values)
//
// All integers are little-endian; levels are one byte per value; values use
// the plain encoding of their physical type.
const pageHeaderSize = 17

// WritePages flushes the content of the buffer to w, one page per column in
// column index order, compressing page payloads with the given codec.
//
// The buffer is not cleared; callers typically Reset it once the pages are
// safely written.
func (buf *Buffer) WritePages(w io.Writer, codec compress.Codec) (int64, error) {
	written := int64(0)
	payload := []byte(nil)
	compressed := []byte(nil)
	header := [pageHeaderSize]byte{}

	for i, col := range buf.columns {
		repetitionLevels, definitionLevels := col.Levels()
		payload = appendLevels(payload[:0], repetitionLevels)
		payload = appendLevels(payload, definitionLevels)
		payload = col.appendPlain(payload)

		var err error
		if compressed, err = codec.Encode(compressed[:0], payload); err != nil {
			return written, fmt.Errorf("columnio: compressing page of column %s: %w", col.Column(), err)
		}

		binary.LittleEndian.PutUint32(header[0:], uint32(i))
		binary.LittleEndian.PutUint32(header[4:], uint32(col.NumValues()))
		binary.LittleEndian.PutUint32(header[8:], uint32(col.NumNulls()))
		header[12] = byte(codec.Code())
		binary.LittleEndian.PutUint32(header[13:], uint32(len(compressed)))

		n, err := w.Write(header[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
		n, err = w.Write(compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func appendLevels(dst []byte, levels []int8) []byte {
	for _, l := range levels {
		dst = append(dst, byte(l))
	}
	return dst
}
