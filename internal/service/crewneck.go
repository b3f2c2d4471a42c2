package service

import (
	"strconv"
	"strings"

	"github.com/msomdec/knitshape/internal/domain"
)

const (
	// minAdultNeckStitches is the smallest per-side total that makes a
	// comfortable adult neck opening.
	minAdultNeckStitches = 8

	warnSmallNeck      = "Neck opening is very small for an adult garment"
	warnSteepCurve     = "No every-other-row decreases; the curve may be too steep"
	msgInvalidCrewNeck = "Enter a positive number of stitches per side."
)

// CrewNeckShaper splits the stitches removed on one side of a crew neck into
// an immediate cast-off, every-row decreases and EOR decreases.
type CrewNeckShaper struct {
	rule domain.CrewNeckRule
}

// NewCrewNeckShaper creates a CrewNeckShaper using the given proportional
// rule. An empty rule selects domain.CrewNeckRuleThird.
func NewCrewNeckShaper(rule domain.CrewNeckRule) *CrewNeckShaper {
	if rule == "" {
		rule = domain.CrewNeckRuleThird
	}
	return &CrewNeckShaper{rule: rule}
}

// Rule returns the proportional rule in use.
func (s *CrewNeckShaper) Rule() domain.CrewNeckRule {
	return s.rule
}

// Calculate allocates totalPerSide stitches. The three counts always sum to
// totalPerSide; only a non-positive total yields an invalid result.
func (s *CrewNeckShaper) Calculate(totalPerSide int) domain.CrewNeckResult {
	return s.CalculateWithRule(totalPerSide, s.rule)
}

// CalculateWithRule is Calculate with an explicit rule, used when a caller
// (such as a share link) pins the rule the result was first computed with.
func (s *CrewNeckShaper) CalculateWithRule(totalPerSide int, rule domain.CrewNeckRule) domain.CrewNeckResult {
	if totalPerSide <= 0 {
		return domain.CrewNeckResult{
			Instructions: []string{msgInvalidCrewNeck},
			Warnings:     []string{},
		}
	}

	castOff, everyRow, eor := splitCrewNeck(totalPerSide, rule)

	var notation []string
	var instructions []string
	if castOff > 0 {
		notation = append(notation, "-"+strconv.Itoa(castOff))
		instructions = append(instructions, "Cast off "+stitchPhrase(castOff)+" at the centre")
	}
	segments := []domain.ShapingSegment{}
	if everyRow > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: 1, Frequency: everyRowFrequency, Repetitions: everyRow})
	}
	if eor > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: 1, Frequency: eorFrequency, Repetitions: eor})
	}
	if len(segments) > 0 {
		notation = append(notation, SegmentNotation(segments, domain.OperationDecrease))
		instructions = append(instructions, SegmentInstructions(segments, domain.OperationDecrease)...)
	}

	warnings := []string{}
	if totalPerSide < minAdultNeckStitches {
		warnings = append(warnings, warnSmallNeck)
	}
	if eor == 0 {
		warnings = append(warnings, warnSteepCurve)
	}

	return domain.CrewNeckResult{
		CastOff:          castOff,
		EveryRowDecrease: everyRow,
		EORDecrease:      eor,
		TotalRowsUsed:    everyRow + eorFrequency*eor,
		Notation:         strings.Join(notation, ", "),
		Instructions:     instructions,
		IsValid:          true,
		Warnings:         warnings,
	}
}

func splitCrewNeck(total int, rule domain.CrewNeckRule) (castOff, everyRow, eor int) {
	switch rule {
	case domain.CrewNeckRuleQuarter:
		castOff = total / 4
		everyRow = total / 2
		eor = total - castOff - everyRow
	default:
		castOff = total / 3
		remaining := total - castOff
		everyRow = remaining / 2
		eor = remaining - everyRow
	}
	return castOff, everyRow, eor
}
