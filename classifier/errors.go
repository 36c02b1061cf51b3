package classifier

import "errors"

var (
	ErrInvalidLabel        = errors.New("invalid label")
	ErrReservedLabel       = errors.New("reserved label")
	ErrStructuralCollision = errors.New("label collides with a structural key")
	ErrDuplicateLabel      = errors.New("duplicate label")
	ErrUnknownLabel        = errors.New("unknown label")
	ErrInvalidDescription  = errors.New("invalid description")
	ErrInvalidImport       = errors.New("invalid import")
)
