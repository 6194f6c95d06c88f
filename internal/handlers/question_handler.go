package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// maxImportSize caps uploaded question sheets.
const maxImportSize = 10 << 20

type QuestionHandler struct {
	BaseHandler
	questionService     services.QuestionService
	importExportService services.ImportExportService
}

func NewQuestionHandler(
	questionService services.QuestionService,
	importExportService services.ImportExportService,
	logger utils.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:         NewBaseHandler(logger),
		questionService:     questionService,
		importExportService: importExportService,
	}
}

// ListQuestions returns the bank, optionally filtered by test. Correct
// answers are only included for admins.
// @Summary List questions
// @Tags questions
// @Produce json
// @Param test query string false "Test identifier"
// @Success 200 {array} models.PublicQuestion
// @Failure 500 {object} ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context(), c.Query("test"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if isAdmin(c) {
		c.JSON(http.StatusOK, questions)
		return
	}

	public := make([]models.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}
	c.JSON(http.StatusOK, public)
}

// CreateQuestion adds a question to the bank
// @Summary Create question
// @Tags questions
// @Accept json
// @Produce json
// @Param question body services.QuestionRequest true "Question data"
// @Success 201 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	h.LogRequest(c, "Creating question")

	var req services.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	userID, _ := currentUserID(c)
	question, err := h.questionService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion replaces a question's fields
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body services.QuestionRequest true "Question data"
// @Success 200 {object} models.Question
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	userID, _ := currentUserID(c)
	question, err := h.questionService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question
// @Summary Delete question
// @Tags questions
// @Param id path string true "Question ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	userID, _ := currentUserID(c)
	if err := h.questionService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question deleted successfully"})
}

// ImportQuestions loads questions from an uploaded CSV or XLSX file
// @Summary Import questions
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX sheet"
// @Success 200 {object} models.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Router /questions/import [post]
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	h.LogRequest(c, "Importing questions")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "File is required", err, "multipart field 'file' is missing")
		return
	}
	if fileHeader.Size > maxImportSize {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "File too large", nil, "maximum size is 10MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Unable to read file", err)
		return
	}
	defer file.Close()

	userID, _ := currentUserID(c)
	summary, err := h.importExportService.ImportQuestions(c.Request.Context(), file, fileHeader.Filename, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Questions imported",
		"filename", fileHeader.Filename,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount)
	c.JSON(http.StatusOK, summary)
}

// ExportQuestions downloads the bank as a spreadsheet
// @Summary Export questions
// @Tags questions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param test query string false "Test identifier"
// @Success 200 {file} file
// @Router /questions/export [get]
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	file, err := h.importExportService.ExportQuestions(c.Request.Context(), strings.TrimSpace(c.Query("test")))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sendFile(c, file)
}

func sendFile(c *gin.Context, file *services.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
