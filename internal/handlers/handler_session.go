package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sessionHandler handles HTTP requests for the session ledger.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

func newSessionHandler(ss portssvc.SessionSvcFacade) *sessionHandler {
	return &sessionHandler{sessionService: ss}
}

// registerSessionRoutes registers all session-related routes.
func registerSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	h := newSessionHandler(sessionService)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("/open", h.openSession)
		sessions.POST("/close", h.closeSession)
		sessions.GET("/active", h.getActiveSession)
		sessions.GET("/active/exists", h.hasActiveSession)
		sessions.GET("/:id/summary", h.getSessionSummary)
	}
}

// openSession godoc
// @Summary Open a cash session
// @Description Opens a new session with a counted opening amount. Fails with 409 while another session is active.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.OpenSessionRequest true "Opening details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 409 {object} dto.Response "Another session is active"
// @Security BearerAuth
// @Router /sessions/open [post]
func (h *sessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for open session request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Failed to open session", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Session opened", slog.Int64("session_id", session.SessionID), slog.String("operator_name", session.OperatorName))
	c.JSON(http.StatusCreated, dto.OK(session))
}

// closeSession godoc
// @Summary Close the active session
// @Description Closes a session with the counted closing amount and returns the reconciliation difference.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.CloseSessionRequest true "Closing details"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 404 {object} dto.Response "Session not found or not active"
// @Security BearerAuth
// @Router /sessions/close [post]
func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for close session request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	session, difference, err := h.sessionService.CloseSession(c.Request.Context(), req.SessionID, req.ClosingAmount)
	if err != nil {
		logger.Warn("Failed to close session", slog.Int64("session_id", req.SessionID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Session closed", slog.Int64("session_id", session.SessionID), slog.String("difference", difference.String()))
	c.JSON(http.StatusOK, dto.OK(dto.ClosedSessionResponse{Session: *session, Difference: difference}))
}

// getActiveSession godoc
// @Summary Get the active session
// @Description Returns the currently open session, or null data when none is open.
// @Tags sessions
// @Produce  json
// @Success 200 {object} dto.Response
// @Security BearerAuth
// @Router /sessions/active [get]
func (h *sessionHandler) getActiveSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, err := h.sessionService.GetActiveSession(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get active session", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	// No open session is a normal state, answered with null data.
	c.JSON(http.StatusOK, dto.OK(session))
}

// hasActiveSession godoc
// @Summary Check for an active session
// @Tags sessions
// @Produce  json
// @Success 200 {object} dto.Response
// @Security BearerAuth
// @Router /sessions/active/exists [get]
func (h *sessionHandler) hasActiveSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	active, err := h.sessionService.HasActiveSession(c.Request.Context())
	if err != nil {
		logger.Error("Failed to check for active session", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(active))
}

// getSessionSummary godoc
// @Summary Get a session reconciliation summary
// @Description Recomputes totals, counts and expected closing balance from the session's full transaction set.
// @Tags sessions
// @Produce  json
// @Param   id path int true "Session ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/summary [get]
func (h *sessionHandler) getSessionSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.sessionService.GetSessionSummary(c.Request.Context(), sessionID)
	if err != nil {
		logger.Warn("Failed to get session summary", slog.Int64("session_id", sessionID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(summary))
}
