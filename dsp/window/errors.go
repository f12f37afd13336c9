package window

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

var errMismatchedLength = fmt.Errorf("window: %w: samples and coefficients must have same length", core.ErrShapeMismatch)
