package decode

import "errors"

var (
	ErrUnknownFormat       = errors.New("unknown audio format")
	ErrUnsupportedEncoding = errors.New("unsupported audio encoding")
	ErrInvalidFile         = errors.New("invalid audio file")
	ErrEmptyStream         = errors.New("audio stream has no frames")
)
