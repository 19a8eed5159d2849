package intercept

import (
	"fmt"

	"github.com/xy-planning-network/safespace"
)

var (
	ErrBadTemplateName       = fmt.Errorf("%w: bad template name", safespace.ErrBadConfig)
	ErrMisconfiguredRenderer = fmt.Errorf("%w: misconfigured renderer", safespace.ErrBadConfig)
)
