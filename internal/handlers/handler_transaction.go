package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the transaction journal.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	operatorService    portssvc.OperatorSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, os portssvc.OperatorSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, operatorService: os}
}

// registerTransactionRoutes registers all transaction-related routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, operatorService portssvc.OperatorSvcFacade) {
	h := newTransactionHandler(transactionService, operatorService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/search", h.searchTransactions)
		transactions.GET("/recent", h.listRecentTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// createdByName resolves the display name of the authenticated operator for
// the audit column. Falls back to the raw operator id if the account
// vanished between token issue and now.
func (h *transactionHandler) createdByName(c *gin.Context) string {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		return ""
	}
	operator, err := h.operatorService.GetOperatorByID(c.Request.Context(), operatorID)
	if err != nil {
		return operatorID
	}
	return operator.Name
}

// createTransaction godoc
// @Summary Register a transaction
// @Description Registers an income or expense against the active session. Expenses exceeding the session balance are rejected with 422.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 404 {object} dto.Response "Session or category not found"
// @Failure 409 {object} dto.Response "Session is closed"
// @Failure 422 {object} dto.Response "Insufficient funds"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), req, h.createdByName(c))
	if err != nil {
		logger.Warn("Failed to create transaction", slog.Int64("session_id", req.SessionID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_number", transaction.TransactionNumber),
		slog.String("transaction_type", string(transaction.TransactionType)),
		slog.String("amount", transaction.Amount.String()))
	c.JSON(http.StatusCreated, dto.OK(transaction))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		logger.Warn("Failed to get transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(transaction))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Corrects amount, concept or category of a recorded movement. The transaction number is never reassigned.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 404 {object} dto.Response "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		logger.Warn("Failed to update transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Transaction updated", slog.Int64("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.OK(transaction))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a movement permanently. Remaining transactions keep their numbers.
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		logger.Warn("Failed to delete transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Transaction deleted", slog.Int64("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.OK(true))
}

// listTransactions godoc
// @Summary List transactions
// @Description Pages through the journal, optionally filtered by session, type and date range. Newest first.
// @Tags transactions
// @Produce  json
// @Param   sessionID query int false "Filter by session"
// @Param   transactionType query string false "Filter by type (income or expense)"
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ListResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ListFail("invalid query parameters: "+err.Error()))
		return
	}

	transactions, totalCount, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListOK(transactions, totalCount))
}

// searchTransactions godoc
// @Summary Search transactions
// @Description Case-insensitive substring match over concept and transaction number.
// @Tags transactions
// @Produce  json
// @Param   query query string true "Search text"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ListResponse "Missing or invalid query"
// @Security BearerAuth
// @Router /transactions/search [get]
func (h *transactionHandler) searchTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for search transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ListFail("invalid query parameters: "+err.Error()))
		return
	}

	transactions, totalCount, err := h.transactionService.SearchTransactions(c.Request.Context(), params.Query, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to search transactions", slog.String("query", params.Query), slog.String("error", err.Error()))
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListOK(transactions, totalCount))
}

// listRecentTransactions godoc
// @Summary List recent transactions
// @Description Returns the latest movements, optionally scoped to one session.
// @Tags transactions
// @Produce  json
// @Param   sessionID query int false "Scope to one session"
// @Param   limit query int false "Number of movements" default(5)
// @Success 200 {object} dto.ListResponse
// @Security BearerAuth
// @Router /transactions/recent [get]
func (h *transactionHandler) listRecentTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var sessionID *int64
	if raw := c.Query("sessionID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ListFail("invalid sessionID parameter"))
			return
		}
		sessionID = &id
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	transactions, err := h.transactionService.ListRecentTransactions(c.Request.Context(), sessionID, limit)
	if err != nil {
		logger.Error("Failed to list recent transactions", slog.String("error", err.Error()))
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListOK(transactions, int64(len(transactions))))
}
