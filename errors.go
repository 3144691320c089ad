package dartlex

import "errors"

// Sentinel errors returned by Lexicon construction and querying. Wrap
// these with fmt.Errorf("...: %w", ...) when adding line/field context;
// callers should compare with errors.Is.
var (
	// ErrMatrixParse is returned (wrapping internal/matrix.ErrParse) when
	// matrix source text is malformed.
	ErrMatrixParse = errors.New("dartlex: matrix parse error")

	// ErrDictParse is returned (wrapping dict.ErrParse or a classifier's
	// own error) when dictionary source text is malformed.
	ErrDictParse = errors.New("dartlex: dictionary parse error")

	// ErrDeserialize is returned when a persisted image is rejected:
	// bad magic, unsupported version, or checksum mismatch.
	ErrDeserialize = errors.New("dartlex: deserialize error")

	// ErrSegmentEmpty is returned by Parse when the input is empty.
	ErrSegmentEmpty = errors.New("dartlex: empty input")

	// ErrSegmentNoPath is returned by Parse when no dictionary entry
	// covers position 0, or the lattice is otherwise disconnected.
	ErrSegmentNoPath = errors.New("dartlex: no segmentation path")
)
