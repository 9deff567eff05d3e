package reflection

import "errors"

// Error types.
var (
	ErrInvalidSubject       = errors.New("invalid subject type")
	ErrNoSuchProperty       = errors.New("no such property")
	ErrNoDefaultConstructor = errors.New("no default constructor")
	ErrAmbiguousAccessor    = errors.New("ambiguous accessor")
	ErrInvocation           = errors.New("invocation failed")
)
