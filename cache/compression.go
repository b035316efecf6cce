// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cache

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the algorithm applied to the cached snapshot.
// The value is written in the payload header.
type Compression byte

const (
	// NoCompression stores the snapshot as is
	NoCompression Compression = iota
	// Zstd compresses the snapshot with Zstandard
	Zstd
	// Brotli compresses the snapshot with Brotli
	Brotli
)

// String returns the name of the compression
func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case Zstd:
		return "zstd"
	case Brotli:
		return "brotli"
	default:
		return fmt.Sprintf("compression(%d)", byte(c))
	}
}

// ParseCompression maps a name to its Compression
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "zstd":
		return Zstd, nil
	case "brotli", "br":
		return Brotli, nil
	case "none":
		return NoCompression, nil
	default:
		return NoCompression, fmt.Errorf("unknown compression %q", name)
	}
}

var zstdEncodersPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

var zstdDecodersPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

var brotliWritersPool = sync.Pool{
	New: func() any {
		return brotli.NewWriterLevel(nil, brotli.DefaultCompression)
	},
}

func compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return data, nil
	case Zstd:
		enc, ok := zstdEncodersPool.Get().(*zstd.Encoder)
		if !ok || enc == nil {
			return nil, fmt.Errorf("zstd encoder unavailable")
		}
		defer zstdEncodersPool.Put(enc)
		return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	case Brotli:
		var buf bytes.Buffer
		writer := brotliWritersPool.Get().(*brotli.Writer)
		writer.Reset(&buf)
		defer func() {
			writer.Reset(nil)
			brotliWritersPool.Put(writer)
		}()
		if _, err := writer.Write(data); err != nil {
			return nil, err
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported %s", c)
	}
}

func decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return data, nil
	case Zstd:
		dec, ok := zstdDecodersPool.Get().(*zstd.Decoder)
		if !ok || dec == nil {
			return nil, fmt.Errorf("zstd decoder unavailable")
		}
		defer zstdDecodersPool.Put(dec)
		return dec.DecodeAll(data, nil)
	case Brotli:
		return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("unsupported %s", c)
	}
}
