package handler

import (
	"github.com/msomdec/knitshape/internal/domain"
)

// GaugeDTO is the JSON representation of a gauge swatch.
type GaugeDTO struct {
	Stitches float64 `json:"stitches"`
	Rows     float64 `json:"rows"`
	Per      float64 `json:"per"`
	Unit     string  `json:"unit"`
}

// StraightRequest is the JSON body of POST /api/straight. Either Stitches and
// Rows or Gauge with Width and Height must be given.
type StraightRequest struct {
	Stitches     int       `json:"stitches"`
	Rows         int       `json:"rows"`
	Distribution string    `json:"distribution"`
	Operation    string    `json:"operation"`
	Gauge        *GaugeDTO `json:"gauge,omitempty"`
	Width        float64   `json:"width,omitempty"`
	Height       float64   `json:"height,omitempty"`
	Unit         string    `json:"unit,omitempty"`
}

// CrewNeckRequest is the JSON body of POST /api/neck.
type CrewNeckRequest struct {
	Stitches int       `json:"stitches"`
	Rule     string    `json:"rule,omitempty"`
	Gauge    *GaugeDTO `json:"gauge,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Unit     string    `json:"unit,omitempty"`
}

// ShareRequest is the JSON body of POST /api/share.
type ShareRequest struct {
	Kind         string `json:"kind"`
	Stitches     int    `json:"stitches"`
	Rows         int    `json:"rows,omitempty"`
	Distribution string `json:"distribution,omitempty"`
	Operation    string `json:"operation,omitempty"`
	Rule         string `json:"rule,omitempty"`
}

// ShareResponse is returned by POST /api/share.
type ShareResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// SegmentDTO is the JSON representation of a shaping segment.
type SegmentDTO struct {
	Stitches    int `json:"stitches"`
	Frequency   int `json:"frequency"`
	Repetitions int `json:"repetitions"`
}

// ShapingResultDTO is the JSON representation of a straight-line result.
type ShapingResultDTO struct {
	Stitches      int          `json:"stitches"`
	Rows          int          `json:"rows"`
	Segments      []SegmentDTO `json:"segments"`
	TotalRowsUsed int          `json:"totalRowsUsed"`
	Notation      string       `json:"notation"`
	Instructions  []string     `json:"instructions"`
	IsValid       bool         `json:"isValid"`
	Warnings      []string     `json:"warnings"`
}

func toShapingResultDTO(in domain.StraightInput, res domain.ShapingResult) ShapingResultDTO {
	segments := make([]SegmentDTO, len(res.Segments))
	for i, s := range res.Segments {
		segments[i] = SegmentDTO{Stitches: s.Stitches, Frequency: s.Frequency, Repetitions: s.Repetitions}
	}
	return ShapingResultDTO{
		Stitches:      in.Stitches,
		Rows:          in.Rows,
		Segments:      segments,
		TotalRowsUsed: res.TotalRowsUsed,
		Notation:      res.Notation,
		Instructions:  nonNil(res.Instructions),
		IsValid:       res.IsValid,
		Warnings:      nonNil(res.Warnings),
	}
}

// CrewNeckResultDTO is the JSON representation of a crew neck result.
type CrewNeckResultDTO struct {
	Stitches         int      `json:"stitches"`
	Rule             string   `json:"rule"`
	CastOff          int      `json:"castOff"`
	EveryRowDecrease int      `json:"everyRowDecrease"`
	EORDecrease      int      `json:"eorDecrease"`
	TotalRowsUsed    int      `json:"totalRowsUsed"`
	Notation         string   `json:"notation"`
	Instructions     []string `json:"instructions"`
	IsValid          bool     `json:"isValid"`
	Warnings         []string `json:"warnings"`
}

func toCrewNeckResultDTO(total int, rule domain.CrewNeckRule, res domain.CrewNeckResult) CrewNeckResultDTO {
	return CrewNeckResultDTO{
		Stitches:         total,
		Rule:             string(rule),
		CastOff:          res.CastOff,
		EveryRowDecrease: res.EveryRowDecrease,
		EORDecrease:      res.EORDecrease,
		TotalRowsUsed:    res.TotalRowsUsed,
		Notation:         res.Notation,
		Instructions:     nonNil(res.Instructions),
		IsValid:          res.IsValid,
		Warnings:         nonNil(res.Warnings),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
