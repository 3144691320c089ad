package dartlex

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/dartlex/dartlex/dict"
	"github.com/dartlex/dartlex/internal/matrix"
	"github.com/dartlex/dartlex/internal/trie"
)

// magic identifies a dartlex persisted image; version allows the framing
// to evolve without breaking ErrDeserialize's contract on old images.
var magic = [4]byte{'D', 'L', 'X', '1'}

const version byte = 1

type image[T any] struct {
	Trie   trie.Snapshot[dict.Entry[T]]
	Matrix matrix.Snapshot
}

// Save writes a deterministic binary image of l to w: a 4-byte magic, a
// version byte, a uint32 payload length, the gob-encoded payload, and a
// trailing CRC-32 (IEEE) checksum over the payload. Load rejects anything
// that doesn't round-trip through this exact framing with ErrDeserialize.
func Save[T any](w io.Writer, l *Lexicon[T]) error {
	img := image[T]{Trie: l.tree.Export(), Matrix: l.mat.Export()}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(img); err != nil {
		return fmt.Errorf("dartlex: encode: %w", err)
	}

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{version}); err != nil {
		return err
	}

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(payload.Len()))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return err
	}

	sum := crc32.ChecksumIEEE(payload.Bytes())
	var sumBuf [4]byte
	binary.BigEndian.PutUint32(sumBuf[:], sum)
	_, err := w.Write(sumBuf[:])
	return err
}

// Load reads a persisted image produced by Save, verifying magic,
// version, and checksum, and rebuilds a Lexicon from it. Any framing
// violation is reported as ErrDeserialize.
func Load[T any](r io.Reader) (*Lexicon[T], error) {
	var gotMagic [4]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, fmt.Errorf("%w: reading magic: %v", ErrDeserialize, err)
	}
	if gotMagic != magic {
		return nil, fmt.Errorf("%w: bad magic %x", ErrDeserialize, gotMagic)
	}

	var gotVersion [1]byte
	if _, err := io.ReadFull(r, gotVersion[:]); err != nil {
		return nil, fmt.Errorf("%w: reading version: %v", ErrDeserialize, err)
	}
	if gotVersion[0] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrDeserialize, gotVersion[0])
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: reading length: %v", ErrDeserialize, err)
	}
	payloadLen := binary.BigEndian.Uint32(lenBuf[:])

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: reading payload: %v", ErrDeserialize, err)
	}

	var sumBuf [4]byte
	if _, err := io.ReadFull(r, sumBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: reading checksum: %v", ErrDeserialize, err)
	}
	if binary.BigEndian.Uint32(sumBuf[:]) != crc32.ChecksumIEEE(payload) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrDeserialize)
	}

	var img image[T]
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&img); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDeserialize, err)
	}

	return &Lexicon[T]{tree: trie.Import(img.Trie), mat: matrix.Import(img.Matrix)}, nil
}
