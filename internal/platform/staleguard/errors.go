package staleguard

import "errors"

var ErrSuperseded = errors.New("superseded by a newer request")
