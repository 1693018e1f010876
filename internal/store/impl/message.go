// Package impl contains the store implementations behind the state layer
// interfaces.
package impl

import (
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
)

// userMessage extracts the presentable message from a failed operation,
// falling back to the operation's own default when the error carries none.
func userMessage(err error, fallback string) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Message() != "" {
		return appErr.Message()
	}

	return fallback
}
