package compress_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/segmentio/columnio-go/compress"
	"github.com/segmentio/columnio-go/compress/brotli"
	"github.com/segmentio/columnio-go/compress/gzip"
	"github.com/segmentio/columnio-go/compress/lz4"
	"github.com/segmentio/columnio-go/compress/snappy"
	"github.com/segmentio/columnio-go/compress/uncompressed"
	"github.com/segmentio/columnio-go/compress/zstd"
)

var codecs = [...]compress.Codec{
	new(uncompressed.Codec),
	new(snappy.Codec),
	new(gzip.Codec),
	new(brotli.Codec),
	new(zstd.Codec),
	new(lz4.Codec),
}

func TestCompressionCodecs(t *testing.T) {
	prng := rand.New(rand.NewSource(0))
	inputs := [][]byte{
		nil,
		[]byte(""),
		[]byte("hello"),
		bytes.Repeat([]byte("0123456789"), 1000),
		make([]byte, 4096),
	}
	prng.Read(inputs[len(inputs)-1])

	for _, codec := range codecs {
		t.Run(codec.String(), func(t *testing.T) {
			for _, input := range inputs {
				// Encode/decode twice to exercise the pooled compressors.
				for i := 0; i < 2; i++ {
					compressed, err := codec.Encode(nil, input)
					if err != nil {
						t.Fatal(err)
					}
					decompressed, err := codec.Decode(nil, compressed)
					if err != nil {
						t.Fatal(err)
					}
					if !bytes.Equal(input, decompressed) {
						t.Errorf("decompressed %d bytes, want %d", len(decompressed), len(input))
					}
				}
			}
		})
	}
}

func TestCodecCodes(t *testing.T) {
	seen := map[compress.Code]string{}
	for _, codec := range codecs {
		code := codec.Code()
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share code %d", codec, other, code)
		}
		seen[code] = codec.String()
		if code.String() != codec.String() {
			t.Errorf("code %d is named %q, codec is named %q", code, code.String(), codec.String())
		}
	}
}
