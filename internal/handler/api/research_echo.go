package api

import (
	"sync"
	"time"

	"EquityPulse/internal/domain/models"
	domrepo "EquityPulse/internal/domain/repository"
	"EquityPulse/internal/usecase"
	xhttp "EquityPulse/pkg/http"
	xlogger "EquityPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResearchEchoHandler exposes the engine over HTTP. A run is triggered
// explicitly; the read endpoints serve the most recent run from memory.
type ResearchEchoHandler struct {
	logger   *xlogger.Logger
	research *usecase.Research
	store    domrepo.CorpusStore

	mu   sync.RWMutex
	last *usecase.ResearchOutput
}

func NewResearchEchoHandler(logger *xlogger.Logger, research *usecase.Research, store domrepo.CorpusStore) *ResearchEchoHandler {
	return &ResearchEchoHandler{logger: logger, research: research, store: store}
}

func (h *ResearchEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/research/run", h.Run)
	g.GET("/decision", h.Decision)
	g.GET("/card", h.Card)
	g.GET("/confidence", h.Confidence)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/confirmations", h.Confirmations)
	g.GET("/evidence", h.Evidence)
	g.GET("/sources", h.Sources)
	g.GET("/corpus", h.Corpus)
}

// SetLast seeds the cached output, used when serve mode follows a run.
func (h *ResearchEchoHandler) SetLast(out *usecase.ResearchOutput) {
	h.mu.Lock()
	h.last = out
	h.mu.Unlock()
}

func (h *ResearchEchoHandler) lastOutput() *usecase.ResearchOutput {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

func (h *ResearchEchoHandler) Run(c echo.Context) error {
	req := &models.RunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	out, err := h.research.Run(c.Request().Context(), req.DaysBack)
	if err != nil {
		h.logger.Error("research run error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.SetLast(out)
	return xhttp.SuccessResponse(c, out)
}

func (h *ResearchEchoHandler) Decision(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.SuccessResponse(c, out.Decision)
}

func (h *ResearchEchoHandler) Card(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.SuccessResponse(c, out.Card)
}

func (h *ResearchEchoHandler) Confidence(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.SuccessResponse(c, out.Confidence)
}

func (h *ResearchEchoHandler) Dashboard(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.ListResponse(c, out.Dashboard, int64(len(out.Dashboard)))
}

func (h *ResearchEchoHandler) Sentiment(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.ListResponse(c, out.Proxy, int64(len(out.Proxy)))
}

func (h *ResearchEchoHandler) Confirmations(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.SuccessResponse(c, out.Confirmations)
}

func (h *ResearchEchoHandler) Evidence(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.ListResponse(c, out.Evidence, int64(len(out.Evidence)))
}

func (h *ResearchEchoHandler) Sources(c echo.Context) error {
	out := h.lastOutput()
	if out == nil {
		return xhttp.NotFoundResponse(c, "no research run available yet")
	}
	return xhttp.ListResponse(c, out.SourceStats, int64(len(out.SourceStats)))
}

// Corpus reads persisted records back from the store.
func (h *ResearchEchoHandler) Corpus(c echo.Context) error {
	if h.store == nil {
		return xhttp.NotFoundResponse(c, "corpus store is not configured")
	}

	req := &models.CorpusRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -req.Days)
	records, err := h.store.QueryRecords(c.Request().Context(), req.Ticker, from, to, req.Limit)
	if err != nil {
		h.logger.Error("corpus query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}
