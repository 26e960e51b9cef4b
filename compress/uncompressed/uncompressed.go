// Package uncompressed provides the no-op implementation of the compression
// codec interface.
package uncompressed

import (
	"github.com/segmentio/columnio-go/compress"
)

type Codec struct {
}

func (c *Codec) String() string {
	return "UNCOMPRESSED"
}

func (c *Codec) Code() compress.Code {
	return compress.Uncompressed
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return append(dst[:0], src...), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return append(dst[:0], src...), nil
}
