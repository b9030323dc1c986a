package render

import (
	"fmt"
	"strings"
)

// BlockNotFoundError is returned when no theme declares any block of the
// computed block-name hierarchy.
type BlockNotFoundError struct {
	Suffix    string
	Hierarchy []string
}

func (e *BlockNotFoundError) Error() string {
	return fmt.Sprintf("unable to render the %s as none of the following blocks exist: %s", e.Suffix, quoteReversed(e.Hierarchy))
}

// DuplicateBlockNameError is returned when the block-name hierarchy contains
// the same name twice, which means the node's block prefixes are broken.
type DuplicateBlockNameError struct {
	Suffix    string
	Hierarchy []string
	Duplicate string
}

func (e *DuplicateBlockNameError) Error() string {
	return fmt.Sprintf("unable to render the %s because the block names contain duplicates (%q): %s", e.Suffix, e.Duplicate, quoteReversed(e.Hierarchy))
}

// Is reports DuplicateBlockNameError as a specific BlockNotFoundError, so
// errors.Is(err, &BlockNotFoundError{}) matches both.
func (e *DuplicateBlockNameError) Is(target error) bool {
	switch target.(type) {
	case *BlockNotFoundError, *DuplicateBlockNameError:
		return true
	default:
		return false
	}
}

// Is matches any BlockNotFoundError.
func (e *BlockNotFoundError) Is(target error) bool {
	_, ok := target.(*BlockNotFoundError)
	return ok
}

func quoteReversed(names []string) string {
	quoted := make([]string, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		quoted = append(quoted, `"`+names[i]+`"`)
	}
	return strings.Join(quoted, ", ")
}
