package service

import (
	"github.com/msomdec/knitshape/internal/domain"
)

const (
	// eorFrequency is the row cadence of an every-other-row event.
	eorFrequency = 2
	// everyRowFrequency is the row cadence of consecutive-row events.
	everyRowFrequency = 1
	// maxComfortableStitches is the largest per-event stitch change that
	// still knits as a smooth edge.
	maxComfortableStitches = 8
)

const (
	warnLargePerPoint   = "Decreases per point are very large; consider a cast-off or more rows"
	warnUseMoreRows     = "More than 8 stitches per event; use more rows for a smoother curve"
	warnExceedsRows     = "Shaping exceeds the available rows"
	warnNoShapingPoints = "At least 2 rows are needed for shaping"
	warnTooFewRows      = "At least 2 total rows are required"
	msgInvalidStraight  = "Enter a positive number of stitches and rows."
)

type shapingCase int

const (
	caseOverflow shapingCase = iota
	caseSparse
	caseExact
	caseDense
)

// StraightLineShaper spreads a stitch change over a row budget using EOR and,
// where EOR cannot fit the count, every-row events. One trailing row is kept
// plain. It holds no state and is safe for concurrent use.
type StraightLineShaper struct{}

// NewStraightLineShaper creates a new StraightLineShaper.
func NewStraightLineShaper() *StraightLineShaper {
	return &StraightLineShaper{}
}

// Calculate builds the shaping schedule for the given input. It never fails:
// non-positive counts produce an invalid result with a diagnostic instruction.
func (s *StraightLineShaper) Calculate(in domain.StraightInput) domain.ShapingResult {
	if in.Stitches <= 0 || in.Rows <= 0 {
		return domain.ShapingResult{
			Segments:     []domain.ShapingSegment{},
			Instructions: []string{msgInvalidStraight},
			Warnings:     []string{},
		}
	}

	availableRows := max(1, in.Rows-1)
	points := availableRows / 2

	kind := classify(in.Stitches, availableRows, points)

	var segments []domain.ShapingSegment
	if points > 0 {
		switch kind {
		case caseOverflow:
			segments = overflowSegments(in.Stitches, points)
		case caseSparse:
			segments = sparseSegments(in.Stitches, points)
		case caseExact:
			segments = []domain.ShapingSegment{{Stitches: 1, Frequency: eorFrequency, Repetitions: in.Stitches}}
		case caseDense:
			segments = denseSegments(in.Stitches, availableRows)
		}
		if in.Distribution == domain.DistributionGentle && (kind == caseOverflow || kind == caseSparse) {
			segments = reversed(segments)
		}
	}
	if segments == nil {
		segments = []domain.ShapingSegment{}
	}

	totalRows := 0
	maxStitches := 0
	for _, seg := range segments {
		totalRows += seg.Rows()
		maxStitches = max(maxStitches, seg.Stitches)
	}

	warnings := []string{}
	if kind == caseOverflow && maxStitches > maxComfortableStitches {
		warnings = append(warnings, warnLargePerPoint)
	}
	if maxStitches > maxComfortableStitches {
		warnings = append(warnings, warnUseMoreRows)
	}
	if kind != caseOverflow && totalRows > availableRows {
		warnings = append(warnings, warnExceedsRows)
	}
	if points == 0 {
		warnings = append(warnings, warnNoShapingPoints)
	}
	if in.Rows < 2 {
		warnings = append(warnings, warnTooFewRows)
	}

	return domain.ShapingResult{
		Segments:      segments,
		TotalRowsUsed: totalRows,
		Notation:      SegmentNotation(segments, in.Operation),
		Instructions:  SegmentInstructions(segments, in.Operation),
		IsValid:       totalRows <= availableRows && in.Rows >= 2 && len(segments) > 0,
		Warnings:      warnings,
	}
}

func classify(stitches, availableRows, points int) shapingCase {
	switch {
	case stitches > availableRows && stitches > points:
		return caseOverflow
	case stitches < points:
		return caseSparse
	case stitches == points:
		return caseExact
	default:
		return caseDense
	}
}

// overflowSegments packs more than one stitch into each EOR point. The
// remainder is carried by the segment with one extra stitch per event.
func overflowSegments(stitches, points int) []domain.ShapingSegment {
	base := stitches / points
	extra := stitches % points

	var segments []domain.ShapingSegment
	if extra > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: base + 1, Frequency: eorFrequency, Repetitions: extra})
	}
	if base > 0 && points-extra > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: base, Frequency: eorFrequency, Repetitions: points - extra})
	}
	return segments
}

// sparseSegments spreads single-stitch events as evenly as possible over the
// EOR points, pushing the remainder to the less frequent segment.
func sparseSegments(stitches, points int) []domain.ShapingSegment {
	c := points / stitches
	d := points % stitches
	e := stitches - d

	var segments []domain.ShapingSegment
	if e > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: 1, Frequency: c * eorFrequency, Repetitions: e})
	}
	if d > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: 1, Frequency: (c + 1) * eorFrequency, Repetitions: d})
	}
	return segments
}

// denseSegments uses as many EOR events as the row budget allows and knits
// the rest on consecutive rows, every-row run first.
func denseSegments(stitches, availableRows int) []domain.ShapingSegment {
	eor := min(availableRows-stitches, stitches)
	everyRow := stitches - eor

	var segments []domain.ShapingSegment
	if everyRow > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: 1, Frequency: everyRowFrequency, Repetitions: everyRow})
	}
	if eor > 0 {
		segments = append(segments, domain.ShapingSegment{Stitches: 1, Frequency: eorFrequency, Repetitions: eor})
	}
	return segments
}

func reversed(segments []domain.ShapingSegment) []domain.ShapingSegment {
	out := make([]domain.ShapingSegment, len(segments))
	for i, seg := range segments {
		out[len(segments)-1-i] = seg
	}
	return out
}
