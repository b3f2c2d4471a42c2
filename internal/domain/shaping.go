package domain

import "fmt"

// Distribution controls the knitting order of two-segment shaping schedules.
type Distribution string

const (
	// DistributionAggressive knits the larger or denser segment first.
	DistributionAggressive Distribution = "aggressive"
	// DistributionGentle knits the smaller or sparser segment first.
	DistributionGentle Distribution = "gentle"
)

// ParseDistribution converts a form or flag value into a Distribution.
// An empty string selects the aggressive default.
func ParseDistribution(s string) (Distribution, error) {
	switch Distribution(s) {
	case "", DistributionAggressive:
		return DistributionAggressive, nil
	case DistributionGentle:
		return DistributionGentle, nil
	}
	return "", fmt.Errorf("%w: unknown distribution %q", ErrInvalidInput, s)
}

// Operation is the direction of a shaping event.
type Operation string

const (
	OperationDecrease Operation = "decrease"
	OperationIncrease Operation = "increase"
)

// ParseOperation converts a form or flag value into an Operation.
// An empty string selects decrease.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case "", OperationDecrease:
		return OperationDecrease, nil
	case OperationIncrease:
		return OperationIncrease, nil
	}
	return "", fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, s)
}

// Verb returns the capitalised instruction verb for the operation.
func (o Operation) Verb() string {
	if o == OperationIncrease {
		return "Increase"
	}
	return "Decrease"
}

// ShapingSegment is one homogeneous run of shaping events: Stitches changed
// per event, every Frequency rows, Repetitions times.
type ShapingSegment struct {
	Stitches    int
	Frequency   int
	Repetitions int
}

// Rows returns the number of rows the segment consumes.
func (s ShapingSegment) Rows() int {
	return s.Frequency * s.Repetitions
}

// StitchTotal returns the number of stitches the segment changes.
func (s ShapingSegment) StitchTotal() int {
	return s.Stitches * s.Repetitions
}

// StraightInput holds the arguments of a straight-line shaping calculation.
type StraightInput struct {
	Stitches     int
	Rows         int
	Distribution Distribution
	Operation    Operation
}

// ShapingResult is the outcome of a straight-line calculation. Segments are in
// knitting order.
type ShapingResult struct {
	Segments      []ShapingSegment
	TotalRowsUsed int
	Notation      string
	Instructions  []string
	IsValid       bool
	Warnings      []string
}

// CrewNeckRule selects the proportional split used by the crew neck shaper.
type CrewNeckRule string

const (
	// CrewNeckRuleThird casts off a third and splits the remainder evenly
	// between every-row and EOR decreases.
	CrewNeckRuleThird CrewNeckRule = "third"
	// CrewNeckRuleQuarter casts off a quarter, decreases half of the total on
	// every row and the rest every other row.
	CrewNeckRuleQuarter CrewNeckRule = "quarter"
)

// ParseCrewNeckRule converts a config or flag value into a CrewNeckRule.
// An empty string selects the third rule.
func ParseCrewNeckRule(s string) (CrewNeckRule, error) {
	switch CrewNeckRule(s) {
	case "", CrewNeckRuleThird:
		return CrewNeckRuleThird, nil
	case CrewNeckRuleQuarter:
		return CrewNeckRuleQuarter, nil
	}
	return "", fmt.Errorf("%w: unknown crew neck rule %q", ErrInvalidInput, s)
}

// CrewNeckResult is the per-side allocation of a crew neck decrease.
type CrewNeckResult struct {
	CastOff          int
	EveryRowDecrease int
	EORDecrease      int
	TotalRowsUsed    int
	Notation         string
	Instructions     []string
	IsValid          bool
	Warnings         []string
}
