package metadata

import (
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned when a response body exceeds the size allowed for it.
var ErrTooLarge = errors.New("response too large")

// ReadBody reads at most limit bytes from r. A body longer than limit is an error, not a
// truncated result.
func ReadBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)
	}
	return body, nil
}
