// Package decoder turns a BIND payload into the on-disk artifact.
//
// The input is standard base64 as produced by the ground station, but
// it is decoded leniently: padding, line breaks and any byte outside
// the alphabet are skipped.  Output is streamed in fixed-size chunks so
// a multi-megabyte archive never has to be held decoded in memory.
package decoder

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"wfbbind/util"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// invalid marks bytes that are not part of the alphabet.
const invalid = 0xFF

var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}
	return m
}()

// Artifact describes what a successful Decode wrote.
type Artifact struct {
	Path   string
	Size   int64
	Digest string // hex BLAKE2b-256 of the written bytes
}

// Decoder writes decoded payloads to a fixed path.
type Decoder struct {
	Path string
	Perm os.FileMode
}

// New returns a Decoder writing to path with 0644 permissions.
func New(path string) *Decoder {
	return &Decoder{Path: path, Perm: 0o644}
}

// Decode decodes payload and replaces the artifact file with the
// result.  It fails only when the file cannot be opened or written;
// malformed input bytes are skipped.
func (d *Decoder) Decode(payload string) (Artifact, error) {
	f, err := os.OpenFile(d.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, d.Perm)
	if err != nil {
		return Artifact{}, fmt.Errorf("open %s: %w", d.Path, err)
	}

	h, _ := blake2b.New256(nil) // only fails for oversized keys
	n, werr := Stream(io.MultiWriter(f, h), payload)
	cerr := f.Close()
	if werr != nil {
		return Artifact{}, fmt.Errorf("write %s: %w", d.Path, werr)
	}
	if cerr != nil {
		return Artifact{}, fmt.Errorf("close %s: %w", d.Path, cerr)
	}

	return Artifact{Path: d.Path, Size: n, Digest: digest(h)}, nil
}

// Stream decodes payload into w and returns the number of bytes
// written.  Decoded bytes are flushed every util.ChunkSize bytes.
func Stream(w io.Writer, payload string) (int64, error) {
	bufp := util.GetBuf()
	defer util.PutBuf(bufp)
	buf := (*bufp)[:0]

	var (
		total int64
		acc   uint32
		bits  uint
	)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		n, err := w.Write(buf)
		total += int64(n)
		buf = buf[:0]
		return err
	}

	for i := 0; i < len(payload); i++ {
		v := decodeMap[payload[i]]
		if v == invalid {
			continue
		}
		acc = acc<<6 | uint32(v)
		bits += 6
		if bits >= 8 {
			bits -= 8
			buf = append(buf, byte(acc>>bits))
			acc &= 1<<bits - 1
			if len(buf) == cap(buf) {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

func digest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
