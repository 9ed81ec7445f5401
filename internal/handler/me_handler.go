package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chriscconte/cycling-coach/internal/auth"
	"github.com/chriscconte/cycling-coach/internal/service/coachcontext"
	"github.com/chriscconte/cycling-coach/internal/service/training"
)

const defaultSessionRange = 7 * 24 * time.Hour

type noteRequest struct {
	Note string `json:"note"`
}

type effortRequest struct {
	PerceivedEffort int `json:"perceived_effort" binding:"required"`
}

type resolveRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

type alternativeResponse struct {
	Available   bool       `json:"available"`
	SuggestedAt *time.Time `json:"suggested_at,omitempty"`
}

type coachContextResponse struct {
	Context coachcontext.Context `json:"context"`
	Prompt  string               `json:"prompt"`
}

// MeHandler serves the authenticated owner's sessions, alerts and coaching views.
type MeHandler struct {
	training *training.Service
	clock    func() time.Time
}

func NewMeHandler(trainingService *training.Service) *MeHandler {
	return &MeHandler{
		training: trainingService,
		clock:    time.Now,
	}
}

// Register mounts the routes on a group that already runs auth.Gin.
func (h *MeHandler) Register(g *gin.RouterGroup) {
	g.GET("/sessions", h.ListSessions)
	g.POST("/sessions/:id/complete", h.CompleteSession)
	g.PUT("/sessions/:id/note", h.UpdateNote)
	g.PUT("/sessions/:id/effort", h.UpdateEffort)
	g.DELETE("/sessions/:id", h.DeleteSession)
	g.GET("/sessions/:id/alternative", h.SuggestAlternative)

	g.GET("/alerts", h.ListAlerts)
	g.POST("/alerts/:id/resolve", h.ResolveAlert)
	g.POST("/alerts/:id/ignore", h.IgnoreAlert)

	g.GET("/coach/context", h.CoachContext)
	g.GET("/stats", h.Stats)
}

func (h *MeHandler) ListSessions(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	now := h.clock()
	from, ok := queryTime(c, "from", now.Add(-defaultSessionRange))
	if !ok {
		return
	}
	to, ok := queryTime(c, "to", now.Add(defaultSessionRange))
	if !ok {
		return
	}
	if !to.After(from) {
		respondError(c, http.StatusBadRequest, "validation_error", "to must be after from")
		return
	}

	sessions, err := h.training.ListSessions(c.Request.Context(), owner, from, to)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *MeHandler) CompleteSession(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	session, err := h.training.MarkCompleted(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *MeHandler) UpdateNote(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	session, err := h.training.AddNote(c.Request.Context(), owner, c.Param("id"), req.Note)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *MeHandler) UpdateEffort(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req effortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	session, err := h.training.UpdatePerceivedEffort(c.Request.Context(), owner, c.Param("id"), req.PerceivedEffort)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *MeHandler) DeleteSession(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.training.DeleteSession(c.Request.Context(), owner, c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MeHandler) SuggestAlternative(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	at, found, err := h.training.SuggestAlternative(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := alternativeResponse{Available: found}
	if found {
		resp.SuggestedAt = &at
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MeHandler) ListAlerts(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	alerts, err := h.training.ListAlerts(c.Request.Context(), owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *MeHandler) ResolveAlert(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	alert, err := h.training.ResolveAlert(c.Request.Context(), owner, c.Param("id"), req.Resolution)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *MeHandler) IgnoreAlert(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	alert, err := h.training.IgnoreAlert(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *MeHandler) CoachContext(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	cc, prompt, err := h.training.CoachContext(c.Request.Context(), owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, coachContextResponse{Context: cc, Prompt: prompt})
}

func (h *MeHandler) Stats(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var window time.Duration
	if days := c.Query("days"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "days must be a positive integer")
			return
		}
		window = time.Duration(n) * 24 * time.Hour
	}

	stats, err := h.training.Stats(c.Request.Context(), owner, window)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func ownerID(c *gin.Context) (string, bool) {
	id, ok := auth.OwnerID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing owner")
		return "", false
	}
	return id, true
}

func queryTime(c *gin.Context, key string, fallback time.Time) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return fallback, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+key+" time format, expected RFC3339")
		return time.Time{}, false
	}
	return t, true
}
