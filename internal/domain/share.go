package domain

import "time"

// ShareKind names the calculator a share link reproduces.
type ShareKind string

const (
	ShareKindStraight ShareKind = "straight"
	ShareKindCrewNeck ShareKind = "neck"
)

// Share is the input tuple carried by a share link. Nothing is stored; the
// result is recomputed whenever the link is opened.
type Share struct {
	Kind      ShareKind
	Straight  StraightInput
	NeckTotal int
	NeckRule  CrewNeckRule
	IssuedAt  time.Time
	ExpiresAt time.Time
}
