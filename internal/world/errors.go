package world

import "errors"

var (
	ErrPlayerExists = errors.New("player already exists")
	ErrEntityExists = errors.New("entity already exists")
)
