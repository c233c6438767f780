package cable

import "errors"

var (
	// ErrIndexOutOfRange is returned when a link or joint index does not exist.
	ErrIndexOutOfRange = errors.New("cable: index out of range")
	// ErrNullJoint is returned when an operation needs a joint between two links that lack a surface.
	ErrNullJoint = errors.New("cable: null joint")
	// ErrNotRolling is returned by MergeLink for links that are not Rolling.
	ErrNotRolling = errors.New("cable: link is not rolling")
	// ErrInvalidTopology is returned by Validate and by topology edits that would break the link chain.
	ErrInvalidTopology = errors.New("cable: invalid topology")
)
