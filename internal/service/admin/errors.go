package admin

import "errors"

var ErrForbidden = errors.New("not authorized")
