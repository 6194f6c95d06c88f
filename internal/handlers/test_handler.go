package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	BaseHandler
	catalogService    services.CatalogService
	submissionService services.SubmissionService
}

func NewTestHandler(catalogService services.CatalogService, submissionService services.SubmissionService, logger utils.Logger) *TestHandler {
	return &TestHandler{
		BaseHandler:       NewBaseHandler(logger),
		catalogService:    catalogService,
		submissionService: submissionService,
	}
}

// ListTests returns the test catalog with question counts
// @Summary List tests
// @Tags tests
// @Produce json
// @Success 200 {array} services.TestInfo
// @Router /tests [get]
func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tests)
}

// SubmitTest scores a completed test and stores the result
// @Summary Submit test
// @Tags tests
// @Accept json
// @Produce json
// @Param submission body services.SubmitRequest true "Answers keyed by question id"
// @Success 200 {object} services.SubmitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /submit-test [post]
func (h *TestHandler) SubmitTest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.RespondWithError(c, http.StatusUnauthorized, CodeUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	h.LogRequest(c, "Submitting test", "test", req.Test, "answer_count", len(req.Answers))

	resp, err := h.submissionService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
