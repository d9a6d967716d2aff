package gen

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks a construct the target language cannot express.
// Generators return it wrapped with the target and the construct instead of
// emitting code that would mean something else.
var ErrUnsupported = errors.New("not supported")

func unsupported(target, construct string) error {
	return fmt.Errorf("%s: %s: %w", target, construct, ErrUnsupported)
}
