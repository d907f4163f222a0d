// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/mangagraph/internal/platform/sparql"
)

// Querier executes one graph query and returns its rows.
//
// [*sparql.Client] is the production implementation. Implementations must be
// safe for concurrent use; the assembler calls Execute from many goroutines.
type Querier interface {
	Execute(context context.Context, query string, opts ...sparql.Option) ([]sparql.Row, error)
}
