package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/msomdec/knitshape/internal/domain"
	"github.com/msomdec/knitshape/internal/service"
	"github.com/msomdec/knitshape/internal/view"
)

// ShareHandler issues share links and renders shared results.
type ShareHandler struct {
	shares   *service.ShareService
	straight *service.StraightLineShaper
	neck     *service.CrewNeckShaper
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shares *service.ShareService, straight *service.StraightLineShaper, neck *service.CrewNeckShaper) *ShareHandler {
	return &ShareHandler{shares: shares, straight: straight, neck: neck}
}

func sharePath(token string) string {
	return "/s/" + token
}

// HandleCreate issues a share token for the posted inputs.
// POST /api/share
func (h *ShareHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := readJSON(w, r, &req); err != nil {
		handleAPIError(w, r, err)
		return
	}

	var token string
	var err error
	switch domain.ShareKind(req.Kind) {
	case domain.ShareKindStraight:
		var in domain.StraightInput
		in, err = straightInputFromRequest(StraightRequest{
			Stitches:     req.Stitches,
			Rows:         req.Rows,
			Distribution: req.Distribution,
			Operation:    req.Operation,
		})
		if err == nil {
			token, err = h.shares.CreateStraight(in)
		}
	case domain.ShareKindCrewNeck:
		rule := h.neck.Rule()
		if req.Rule != "" {
			rule, err = domain.ParseCrewNeckRule(req.Rule)
		}
		if err == nil {
			token, err = h.shares.CreateCrewNeck(req.Stitches, rule)
		}
	default:
		err = fmt.Errorf("%w: kind must be %q or %q", domain.ErrInvalidInput, domain.ShareKindStraight, domain.ShareKindCrewNeck)
	}
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ShareResponse{Token: token, URL: sharePath(token)})
}

// HandleView recomputes and renders a shared result.
// GET /s/{token}
func (h *ShareHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	share, err := h.shares.Resolve(token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			view.ErrorPage(http.StatusNotFound, "Link Not Found", "This share link is invalid or has expired.").Render(r.Context(), w)
			return
		}
		slog.Error("resolve share", "error", err, "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	switch share.Kind {
	case domain.ShareKindStraight:
		in := share.Straight
		res := h.straight.Calculate(in)
		title := fmt.Sprintf("%s %d stitches over %d rows", in.Operation.Verb(), in.Stitches, in.Rows)
		view.SharedResultPage(title, view.StraightResultFragment(res, ""), service.FormatStraight(res), share.ExpiresAt).Render(r.Context(), w)
	case domain.ShareKindCrewNeck:
		res := h.neck.CalculateWithRule(share.NeckTotal, share.NeckRule)
		title := fmt.Sprintf("Crew neck, %d stitches per side", share.NeckTotal)
		view.SharedResultPage(title, view.CrewNeckResultFragment(res, ""), service.FormatCrewNeck(res), share.ExpiresAt).Render(r.Context(), w)
	}
}
