package dashboard

import "errors"

var ErrInternal = errors.New("service: internal error")
