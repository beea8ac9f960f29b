package httpadapter

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"svw.info/tenmatch/internal/adapters/ws"
	"svw.info/tenmatch/internal/domain"
	"svw.info/tenmatch/internal/usecase"
)

type Handler struct {
	UC            *usecase.Service
	RoundDuration time.Duration
	upgrader      websocket.Upgrader
	log           logrus.FieldLogger
}

func New(uc *usecase.Service, roundDuration time.Duration, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		UC:            uc,
		RoundDuration: roundDuration,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api/rounds")
	api.POST("", h.handleCreate)
	api.GET("/:id", h.handleView)
	api.POST("/:id/begin", h.handleBegin)
	api.POST("/:id/extend", h.handleExtend)
	api.POST("/:id/release", h.handleRelease)
	api.POST("/:id/expire", h.handleExpire)
	api.POST("/:id/reset", h.handleReset)
	api.GET("/:id/hint", h.handleHint)
	api.GET("/:id/ws", h.handleFeed)
}

type roundResp struct {
	ID string `json:"id"`
	domain.RoundView
	RoundDurationMs int64 `json:"roundDurationMs"`
}

func (h *Handler) round(id string, v domain.RoundView) roundResp {
	return roundResp{ID: id, RoundView: v, RoundDurationMs: h.RoundDuration.Milliseconds()}
}

// ---- Create ----

type createReq struct {
	Seed    *int64       `json:"seed,omitempty"`
	Scoring string       `json:"scoring,omitempty"`
	Grid    *domain.Grid `json:"grid,omitempty"`
}

func (h *Handler) handleCreate(c *gin.Context) {
	var req createReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
			return
		}
	}
	p := usecase.NewRoundParams{Seed: req.Seed, Grid: req.Grid}
	if req.Scoring != "" {
		s, err := domain.ParseScoring(req.Scoring)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResp{Error: err.Error()})
			return
		}
		p.Scoring = &s
	}
	id, v, err := h.UC.Create(c.Request.Context(), p)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.round(id, v))
}

func (h *Handler) handleView(c *gin.Context) {
	id := c.Param("id")
	v, err := h.UC.View(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.round(id, v))
}

// ---- Gesture ----

type coordReq struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type selectionResp struct {
	Selection domain.Selection `json:"selection"`
}

func (h *Handler) bindCoord(c *gin.Context) (domain.Coord, bool) {
	var req coordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return domain.Coord{}, false
	}
	return domain.Coord{Row: *req.Row, Col: *req.Col}, true
}

func (h *Handler) handleBegin(c *gin.Context) {
	at, ok := h.bindCoord(c)
	if !ok {
		return
	}
	sel, err := h.UC.Begin(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, selectionResp{Selection: sel})
}

func (h *Handler) handleExtend(c *gin.Context) {
	at, ok := h.bindCoord(c)
	if !ok {
		return
	}
	sel, err := h.UC.Extend(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, selectionResp{Selection: sel})
}

func (h *Handler) handleRelease(c *gin.Context) {
	out, err := h.UC.Release(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ---- Round lifecycle ----

func (h *Handler) handleExpire(c *gin.Context) {
	id := c.Param("id")
	v, err := h.UC.Expire(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.round(id, v))
}

func (h *Handler) handleReset(c *gin.Context) {
	id := c.Param("id")
	v, err := h.UC.Reset(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.round(id, v))
}

// ---- Hint ----

type hintResp struct {
	Found      bool             `json:"found"`
	Cells      domain.Selection `json:"cells,omitempty"`
	Nodes      int              `json:"nodes,omitempty"`
	DurationMs int64            `json:"durationMs,omitempty"`
}

func (h *Handler) handleHint(c *gin.Context) {
	sel, ok, st, err := h.UC.Hint(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hintResp{Found: ok, Cells: sel, Nodes: st.Nodes, DurationMs: st.Duration.Milliseconds()})
}

// ---- Feed ----

// handleFeed upgrades to a websocket and makes it the round's observer.
// A newer feed for the same round takes over the slot.
func (h *Handler) handleFeed(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.UC.Round(ctx, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	log := h.log.WithField("round", id)
	feed := ws.NewFeed(conn, log)
	if err := h.UC.Attach(ctx, id, feed); err != nil {
		feed.Close()
		return
	}
	log.Info("feed attached")
	feed.Serve()
	h.UC.Unobserve(ctx, id, feed)
	log.Info("feed detached")
}
