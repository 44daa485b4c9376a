// Package service holds the account, catalog and lending managers. Services
// take validated input, apply the domain rules and talk to the repositories;
// HTTP concerns stay in the controllers.
package service

import (
	"errors"

	"librarium/apperr"
)

// asAppError passes tagged errors through untouched and wraps everything
// else, persistence failures included, as Internal.
func asAppError(op string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Wrap(apperr.Internal, op, err)
}
