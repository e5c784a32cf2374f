//go:build tools

// Package tools pins Go-based tools invoked via go generate (mockgen) as
// module dependencies.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
