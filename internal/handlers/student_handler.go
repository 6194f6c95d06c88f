package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	BaseHandler
	studentService      services.StudentService
	importExportService services.ImportExportService
}

func NewStudentHandler(studentService services.StudentService, importExportService services.ImportExportService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:         NewBaseHandler(logger),
		studentService:      studentService,
		importExportService: importExportService,
	}
}

// ListStudents returns every student ordered by name
// @Summary List students
// @Tags admin
// @Produce json
// @Success 200 {array} models.Respondent
// @Router /admin/students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), "")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// SearchStudents filters students by name or roll number
// @Summary Search students
// @Tags admin
// @Produce json
// @Param query query string false "Substring of name or roll number"
// @Success 200 {array} models.Respondent
// @Router /admin/students/search [get]
func (h *StudentHandler) SearchStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// ExportResults downloads all student results
// @Summary Export results
// @Tags admin
// @Param format query string false "xlsx or csv"
// @Param test query string false "Only this test"
// @Success 200 {file} file
// @Router /admin/students/export [get]
func (h *StudentHandler) ExportResults(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindError(c, err)
		return
	}
	req.Format = models.ExportFormat(strings.ToLower(string(req.Format)))

	file, err := h.importExportService.ExportResults(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Results exported", "format", req.Format, "bytes", len(file.Data))
	sendFile(c, file)
}

// GetStudent returns one student with result history
// @Summary Get student
// @Tags admin
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.Respondent
// @Failure 404 {object} ErrorResponse
// @Router /admin/students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a student and their results
// @Summary Delete student
// @Tags admin
// @Param id path string true "Student ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	userID, _ := currentUserID(c)
	if err := h.studentService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Student deleted successfully"})
}

// ResetAssessment clears one test's results, or all of them
// @Summary Reset assessment
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param body body services.ResetRequest false "Optional test"
// @Success 200 {object} services.ResetResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/students/{id}/reset-assessment [post]
func (h *StudentHandler) ResetAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	// The body is optional; an empty one resets everything.
	var req services.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.bindError(c, err)
		return
	}

	userID, _ := currentUserID(c)
	resp, err := h.studentService.ResetAssessment(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
