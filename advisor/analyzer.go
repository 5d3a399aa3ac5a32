/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package advisor

import (
	"github.com/suparena/dynasim/storagemodels"
)

// Analyzer inspects one completed operation record and returns zero or more
// advisories. Analyzers never reject or alter an operation; they only
// annotate the response. The dispatcher runs them synchronously after each
// successful operation.
type Analyzer interface {
	Observe(rec storagemodels.OperationRecord) []storagemodels.Advisory
}
