//go:build !ebiten

package desktop

import (
	"context"

	"github.com/vovakirdan/framedrive/internal/core"
)

// Run reports that the window host is not compiled in.
func Run(context.Context, string, core.RuntimeConfig, Options) error {
	return ErrUnavailable
}
