package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/knitshape/internal/domain"
	"github.com/msomdec/knitshape/internal/service"
	"github.com/msomdec/knitshape/internal/view"
)

var defaultSignals = view.CalculatorSignals{
	Stitches:     50,
	Rows:         26,
	Distribution: string(domain.DistributionAggressive),
	Operation:    string(domain.OperationDecrease),
	PerSide:      15,
}

// ShapingHandler serves the calculator page, its live datastar endpoints and
// the JSON calculation API.
type ShapingHandler struct {
	straight *service.StraightLineShaper
	neck     *service.CrewNeckShaper
	shares   *service.ShareService
}

// NewShapingHandler creates a new ShapingHandler.
func NewShapingHandler(straight *service.StraightLineShaper, neck *service.CrewNeckShaper, shares *service.ShareService) *ShapingHandler {
	return &ShapingHandler{straight: straight, neck: neck, shares: shares}
}

// HandleHome renders the calculator page with default inputs.
func (h *ShapingHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		view.ErrorPage(http.StatusNotFound, "Not Found", "There is nothing at this address.").Render(r.Context(), w)
		return
	}

	in := domain.StraightInput{
		Stitches:     defaultSignals.Stitches,
		Rows:         defaultSignals.Rows,
		Distribution: domain.DistributionAggressive,
		Operation:    domain.OperationDecrease,
	}
	straight := h.straight.Calculate(in)
	neck := h.neck.Calculate(defaultSignals.PerSide)

	view.CalculatorPage(defaultSignals, straight, neck).Render(r.Context(), w)
}

// HandleLiveStraight recomputes the straight-line result from the page
// signals and patches #straight-result.
// POST /shaping/straight
func (h *ShapingHandler) HandleLiveStraight(w http.ResponseWriter, r *http.Request) {
	var signals view.CalculatorSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		patchShapingError(w, r, "straight-result", "Could not read the calculator inputs.")
		return
	}

	in, err := straightInputFromSignals(signals)
	if err != nil {
		patchShapingError(w, r, "straight-result", err.Error())
		return
	}

	res := h.straight.Calculate(in)
	shareURL := ""
	if res.IsValid {
		if token, err := h.shares.CreateStraight(in); err == nil {
			shareURL = sharePath(token)
		} else {
			slog.Error("create straight share", "error", err, "request_id", RequestIDFromContext(r.Context()))
		}
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.StraightResultFragment(res, shareURL)); err != nil {
		slog.Error("patch straight result", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
}

// HandleLiveCrewNeck recomputes the crew neck result from the page signals
// and patches #neck-result.
// POST /shaping/neck
func (h *ShapingHandler) HandleLiveCrewNeck(w http.ResponseWriter, r *http.Request) {
	var signals view.CalculatorSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		patchShapingError(w, r, "neck-result", "Could not read the calculator inputs.")
		return
	}

	res := h.neck.Calculate(signals.PerSide)
	shareURL := ""
	if res.IsValid {
		if token, err := h.shares.CreateCrewNeck(signals.PerSide, h.neck.Rule()); err == nil {
			shareURL = sharePath(token)
		} else {
			slog.Error("create crew neck share", "error", err, "request_id", RequestIDFromContext(r.Context()))
		}
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.CrewNeckResultFragment(res, shareURL)); err != nil {
		slog.Error("patch crew neck result", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
}

// HandleStraight computes a straight-line schedule.
// POST /api/straight
func (h *ShapingHandler) HandleStraight(w http.ResponseWriter, r *http.Request) {
	var req StraightRequest
	if err := readJSON(w, r, &req); err != nil {
		handleAPIError(w, r, err)
		return
	}

	in, err := straightInputFromRequest(req)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toShapingResultDTO(in, h.straight.Calculate(in)))
}

// HandleCrewNeck computes a crew neck allocation.
// POST /api/neck
func (h *ShapingHandler) HandleCrewNeck(w http.ResponseWriter, r *http.Request) {
	var req CrewNeckRequest
	if err := readJSON(w, r, &req); err != nil {
		handleAPIError(w, r, err)
		return
	}

	rule := h.neck.Rule()
	if req.Rule != "" {
		parsed, err := domain.ParseCrewNeckRule(req.Rule)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		rule = parsed
	}

	total := req.Stitches
	if req.Gauge != nil {
		unit, err := service.ParseUnit(req.Unit)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		total, err = gaugeFromDTO(req.Gauge).StitchesFor(req.Width, unit)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toCrewNeckResultDTO(total, rule, h.neck.CalculateWithRule(total, rule)))
}

func straightInputFromSignals(s view.CalculatorSignals) (domain.StraightInput, error) {
	dist, err := domain.ParseDistribution(s.Distribution)
	if err != nil {
		return domain.StraightInput{}, err
	}
	op, err := domain.ParseOperation(s.Operation)
	if err != nil {
		return domain.StraightInput{}, err
	}
	return domain.StraightInput{Stitches: s.Stitches, Rows: s.Rows, Distribution: dist, Operation: op}, nil
}

func straightInputFromRequest(req StraightRequest) (domain.StraightInput, error) {
	dist, err := domain.ParseDistribution(req.Distribution)
	if err != nil {
		return domain.StraightInput{}, err
	}
	op, err := domain.ParseOperation(req.Operation)
	if err != nil {
		return domain.StraightInput{}, err
	}

	in := domain.StraightInput{Stitches: req.Stitches, Rows: req.Rows, Distribution: dist, Operation: op}
	if req.Gauge == nil {
		return in, nil
	}

	unit, err := service.ParseUnit(req.Unit)
	if err != nil {
		return domain.StraightInput{}, err
	}
	g := gaugeFromDTO(req.Gauge)
	if in.Stitches, err = g.StitchesFor(req.Width, unit); err != nil {
		return domain.StraightInput{}, err
	}
	if in.Rows, err = g.RowsFor(req.Height, unit); err != nil {
		return domain.StraightInput{}, err
	}
	return in, nil
}

func gaugeFromDTO(g *GaugeDTO) service.Gauge {
	return service.Gauge{Stitches: g.Stitches, Rows: g.Rows, Per: g.Per, Unit: service.Unit(g.Unit)}
}

// patchShapingError reports unreadable signals inside the result panel, so
// the page shows the problem instead of silently keeping a stale result.
func patchShapingError(w http.ResponseWriter, r *http.Request, id, message string) {
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.ShapingErrorFragment(id, message)); err != nil {
		slog.Error("patch shaping error", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
}

func handleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		slog.Error("shaping api", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
