package gamever

import "errors"

// ErrInvalidVersionFiles means a version file was modified outside the patcher.
var ErrInvalidVersionFiles = errors.New("invalid version files")
