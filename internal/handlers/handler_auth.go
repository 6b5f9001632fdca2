package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
	"github.com/cajachoca/cajachoca_backend/internal/platform/config"
	"github.com/cajachoca/cajachoca_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles operator login and registration.
type authHandler struct {
	cfg             *config.Config
	operatorService portssvc.OperatorSvcFacade
}

func newAuthHandler(cfg *config.Config, os portssvc.OperatorSvcFacade) *authHandler {
	return &authHandler{cfg: cfg, operatorService: os}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, operatorService portssvc.OperatorSvcFacade) {
	h := newAuthHandler(cfg, operatorService)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
	}
}

// registerOperatorRoutes registers the protected operator management routes.
func registerOperatorRoutes(rg *gin.RouterGroup, cfg *config.Config, operatorService portssvc.OperatorSvcFacade) {
	h := newAuthHandler(cfg, operatorService)

	operators := rg.Group("/operators")
	{
		operators.POST("", h.createOperator)
	}
}

// login godoc
// @Summary Authenticate an operator
// @Description Verifies credentials and returns a signed bearer token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 401 {object} dto.Response "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	operator, err := h.operatorService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown user and bad password are indistinguishable on purpose.
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login rejected", slog.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, dto.Fail("invalid username or password"))
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	token, err := utils.GenerateAuthToken(operator.OperatorID, h.cfg.JWTIssuer, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("failed to sign token"))
		return
	}

	logger.Info("Operator logged in", slog.String("operator_id", operator.OperatorID))
	c.JSON(http.StatusOK, dto.OK(dto.LoginResponse{Token: token, Operator: *operator}))
}

// register godoc
// @Summary Register the first operator account
// @Description Creates the bootstrap operator on a fresh install. Returns 409 once any operator exists.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   operator body dto.CreateOperatorRequest true "Operator details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 409 {object} dto.Response "Registration is closed"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	operator, err := h.operatorService.RegisterFirstOperator(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Registration rejected", slog.String("username", req.Username), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Bootstrap operator registered", slog.String("operator_id", operator.OperatorID), slog.String("username", operator.Username))
	c.JSON(http.StatusCreated, dto.OK(operator))
}

// createOperator godoc
// @Summary Create an operator account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   operator body dto.CreateOperatorRequest true "Operator details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 409 {object} dto.Response "Username is taken"
// @Security BearerAuth
// @Router /operators [post]
func (h *authHandler) createOperator(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create operator request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	operator, err := h.operatorService.CreateOperator(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Failed to create operator", slog.String("username", req.Username), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Operator created", slog.String("operator_id", operator.OperatorID), slog.String("username", operator.Username))
	c.JSON(http.StatusCreated, dto.OK(operator))
}
