package columnio

import (
	"github.com/segmentio/columnio-go/compress"
	"github.com/segmentio/columnio-go/compress/brotli"
	"github.com/segmentio/columnio-go/compress/gzip"
	"github.com/segmentio/columnio-go/compress/lz4"
	"github.com/segmentio/columnio-go/compress/snappy"
	"github.com/segmentio/columnio-go/compress/uncompressed"
	"github.com/segmentio/columnio-go/compress/zstd"
)

// Default codec instances usable by programs flushing buffers to pages.
var (
	Uncompressed compress.Codec = new(uncompressed.Codec)
	Snappy       compress.Codec = new(snappy.Codec)
	Gzip         compress.Codec = new(gzip.Codec)
	Brotli       compress.Codec = new(brotli.Codec)
	Zstd         compress.Codec = new(zstd.Codec)
	Lz4          compress.Codec = new(lz4.Codec)
)

// LookupCompressionCodec returns the default codec instance identified by
// the given code in page headers, or nil if the code is unknown.
func LookupCompressionCodec(code compress.Code) compress.Codec {
	switch code {
	case compress.Uncompressed:
		return Uncompressed
	case compress.Snappy:
		return Snappy
	case compress.Gzip:
		return Gzip
	case compress.Brotli:
		return Brotli
	case compress.Zstd:
		return Zstd
	case compress.Lz4:
		return Lz4
	default:
		return nil
	}
}
