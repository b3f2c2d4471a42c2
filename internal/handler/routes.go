package handler

import (
	"net/http"

	"github.com/msomdec/knitshape/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	straight *service.StraightLineShaper,
	neck *service.CrewNeckShaper,
	shares *service.ShareService,
	limiter *service.RateLimiter,
) {
	shaping := NewShapingHandler(straight, neck, shares)
	sharing := NewShareHandler(shares, straight, neck)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /", shaping.HandleHome)

	// Live recalculation from the calculator page (datastar SSE).
	mux.HandleFunc("POST /shaping/straight", shaping.HandleLiveStraight)
	mux.HandleFunc("POST /shaping/neck", shaping.HandleLiveCrewNeck)

	// JSON API.
	mux.Handle("POST /api/straight", RateLimit(limiter, http.HandlerFunc(shaping.HandleStraight)))
	mux.Handle("POST /api/neck", RateLimit(limiter, http.HandlerFunc(shaping.HandleCrewNeck)))
	mux.Handle("POST /api/share", RateLimit(limiter, http.HandlerFunc(sharing.HandleCreate)))

	mux.HandleFunc("GET /s/{token}", sharing.HandleView)
}
