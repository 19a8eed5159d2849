package registry

import (
	"fmt"

	"github.com/xy-planning-network/safespace"
)

var (
	ErrDuplicateKind = fmt.Errorf("%w: duplicate failure kind", safespace.ErrBadConfig)
	ErrUnknownKind   = fmt.Errorf("%w: unknown failure kind", safespace.ErrBadConfig)
)
