package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msomdec/knitshape/internal/domain"
)

// SegmentNotation renders segments in ratio notation, in the given order.
// Decreases carry a leading minus sign: "-4/2/10, -5/2/2".
func SegmentNotation(segments []domain.ShapingSegment, op domain.Operation) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, renderSegment(seg, op))
	}
	return strings.Join(parts, ", ")
}

func renderSegment(seg domain.ShapingSegment, op domain.Operation) string {
	s := fmt.Sprintf("%d/%d/%d", seg.Stitches, seg.Frequency, seg.Repetitions)
	if op == domain.OperationDecrease {
		return "-" + s
	}
	return s
}

// SegmentInstructions renders one sentence per segment, for example
// "Decrease 1 stitch every 2 rows, 41 times".
func SegmentInstructions(segments []domain.ShapingSegment, op domain.Operation) []string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("%s %s every %d rows, %d times",
			op.Verb(), stitchPhrase(seg.Stitches), seg.Frequency, seg.Repetitions))
	}
	return lines
}

func stitchPhrase(n int) string {
	if n == 1 {
		return "1 stitch"
	}
	return strconv.Itoa(n) + " stitches"
}

// FormatStraight renders a straight-line result as plain text suitable for
// pasting into a pattern document.
func FormatStraight(res domain.ShapingResult) string {
	return formatBlock(res.Notation, res.Instructions, res.Warnings)
}

// FormatCrewNeck renders a crew neck result as plain text.
func FormatCrewNeck(res domain.CrewNeckResult) string {
	return formatBlock(res.Notation, res.Instructions, res.Warnings)
}

func formatBlock(notation string, instructions, warnings []string) string {
	var sb strings.Builder
	if notation != "" {
		sb.WriteString(notation)
		sb.WriteString("\n")
	}
	for _, line := range instructions {
		fmt.Fprintf(&sb, "  %s\n", line)
	}
	for _, w := range warnings {
		fmt.Fprintf(&sb, "! %s\n", w)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
