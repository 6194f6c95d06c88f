package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

const (
	questionsSheet = "Questions"
	resultsSheet   = "Results"
	optionSep      = "|"
	timeLayout     = "2006-01-02 15:04:05"
)

// questionColumns is the layout shared by import and export.
var questionColumns = []string{"question_number", "text", "test", "category", "options", "correct_answer"}

var resultColumns = []string{
	"Roll Number", "Name", "Year", "Test", "Mode", "Completed At",
	"Primary Career", "Top Three", "R", "I", "A", "S", "E", "C",
	"Score", "Form", "Interpretation", "Correct", "Total",
}

type importExportService struct {
	repo      repositories.Repository
	questions QuestionService
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewImportExportService(repo repositories.Repository, questions QuestionService, validator *validator.Validator, logger *ServiceLogger) ImportExportService {
	return &importExportService{
		repo:      repo,
		questions: questions,
		validator: validator,
		logger:    logger,
	}
}

// ===== IMPORT OPERATIONS =====

// ImportQuestions loads a CSV or XLSX sheet. Rows that fail parsing or
// validation are reported and skipped; the remaining rows are inserted in one
// transaction.
func (s *importExportService) ImportQuestions(ctx context.Context, reader io.Reader, filename string, actorID string) (summary *models.ImportSummary, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "import_questions", actorID, filename, "question", time.Since(start), err)
	}()

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		rows, err = readCSV(reader)
	case ".xlsx":
		rows, err = readXLSX(reader)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyImport
	}

	headerMap := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		headerMap[normalizeHeader(header)] = i
	}
	if _, ok := headerMap["text"]; !ok {
		return nil, NewValidationError("headers", "missing required column: text", rows[0])
	}

	summary = &models.ImportSummary{
		TotalRows:        len(rows) - 1,
		CreatedQuestions: []string{},
		Errors:           []models.ImportValidationError{},
		Status:           models.ImportProcessing,
	}

	var questions []*models.Question
	for i, record := range rows[1:] {
		rowNum := i + 2
		summary.ProcessedRows++

		if isBlankRow(record) {
			summary.TotalRows--
			summary.ProcessedRows--
			continue
		}

		question, rowErrors := s.parseQuestionRow(record, headerMap, rowNum, i+1)
		if len(rowErrors) > 0 {
			summary.Errors = append(summary.Errors, rowErrors...)
			summary.ErrorCount++
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) > 0 {
		if err := s.questions.CreateBatch(ctx, questions, actorID); err != nil {
			return nil, fmt.Errorf("failed to save questions: %w", err)
		}
		for _, q := range questions {
			summary.CreatedQuestions = append(summary.CreatedQuestions, q.ID)
		}
	}

	summary.SuccessCount = len(questions)
	summary.ProcessingTime = time.Since(start)
	summary.Status = models.ImportCompleted
	if summary.SuccessCount == 0 {
		summary.Status = models.ImportValidationFailed
	}

	s.logger.Logger().InfoContext(ctx, "Question import completed",
		"filename", filename,
		"total_rows", summary.TotalRows,
		"success_count", summary.SuccessCount,
		"error_count", summary.ErrorCount)

	return summary, nil
}

func (s *importExportService) parseQuestionRow(record []string, headerMap map[string]int, rowNum, position int) (*models.Question, []models.ImportValidationError) {
	var errs []models.ImportValidationError

	getColumn := func(name string) string {
		if index, exists := headerMap[name]; exists && index < len(record) {
			return strings.TrimSpace(record[index])
		}
		return ""
	}

	question := &models.Question{
		QuestionNumber: position,
		Text:           getColumn("text"),
		Test:           getColumn("test"),
	}

	if raw := getColumn("question_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, models.ImportValidationError{
				Row: rowNum, Column: "question_number", Message: "must be a non-negative integer", Value: raw, Code: "invalid_number",
			})
		} else {
			question.QuestionNumber = n
		}
	}
	if category := getColumn("category"); category != "" {
		question.Category = &category
	}
	if options := splitOptions(getColumn("options")); len(options) > 0 {
		question.Options = datatypes.JSONSlice[string](options)
	}
	if answer := getColumn("correct_answer"); answer != "" {
		question.CorrectAnswer = &answer
	}

	normalizeQuestion(question)
	if err := s.validator.Question().ValidateQuestion(question); err != nil {
		if verrs, ok := err.(ValidationErrors); ok {
			for _, ve := range verrs {
				errs = append(errs, models.ImportValidationError{
					Row: rowNum, Column: ve.Field, Message: ve.Message, Value: fmt.Sprint(valueOrEmpty(ve.Value)), Code: ve.Rule,
				})
			}
		} else {
			errs = append(errs, models.ImportValidationError{Row: rowNum, Message: err.Error(), Code: "invalid"})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return question, nil
}

func readCSV(reader io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("failed to read CSV: %v", err), nil)
	}
	return records, nil
}

func readXLSX(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("failed to open Excel file: %v", err), nil)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	idx := f.GetActiveSheetIndex()
	if idx < 0 || idx >= len(sheets) {
		idx = 0
	}
	rows, err := f.GetRows(sheets[idx])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return rows, nil
}

// ===== EXPORT OPERATIONS =====

func (s *importExportService) ExportQuestions(ctx context.Context, test string) (*ExportFile, error) {
	questions, err := s.questions.List(ctx, test)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []interface{}{
			q.QuestionNumber,
			q.Text,
			q.Test,
			derefString(q.Category),
			strings.Join(q.Options, optionSep),
			derefString(q.CorrectAnswer),
		})
	}

	headers := make([]interface{}, len(questionColumns))
	for i, h := range questionColumns {
		headers[i] = h
	}

	data, err := writeXLSX(questionsSheet, headers, rows)
	if err != nil {
		return nil, err
	}

	name := "questions"
	if test != "" {
		name += "_" + strings.ToLower(test)
	}
	return &ExportFile{
		Filename:    name + ".xlsx",
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

// ExportResults writes one row per stored result; students without results
// get a single row with empty result columns.
func (s *importExportService) ExportResults(ctx context.Context, req *models.ExportRequest) (*ExportFile, error) {
	if req == nil {
		req = &models.ExportRequest{}
	}
	if req.Format == "" {
		req.Format = models.ExportXLSX
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	role := models.RoleStudent
	students, _, err := s.repo.Respondent().List(ctx, nil, repositories.RespondentFilters{Role: &role})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	var rows [][]interface{}
	for _, student := range students {
		written := false
		for i := range student.Results {
			result := &student.Results[i]
			if req.Test != "" && result.Test != req.Test {
				continue
			}
			rows = append(rows, resultRow(student, result))
			written = true
		}
		if !written && req.Test == "" {
			rows = append(rows, resultRow(student, nil))
		}
	}

	headers := make([]interface{}, len(resultColumns))
	for i, h := range resultColumns {
		headers[i] = h
	}

	file := &ExportFile{Filename: "student_results." + string(req.Format)}
	switch req.Format {
	case models.ExportCSV:
		file.ContentType = ContentTypeCSV
		file.Data, err = writeCSV(headers, rows)
	default:
		file.ContentType = ContentTypeXLSX
		file.Data, err = writeXLSX(resultsSheet, headers, rows)
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func resultRow(student *models.Respondent, result *models.TestResult) []interface{} {
	year := ""
	if student.Year != nil {
		year = strconv.Itoa(*student.Year)
	}
	row := []interface{}{student.RollNumber, student.Name, year}
	if result == nil {
		for len(row) < len(resultColumns) {
			row = append(row, "")
		}
		return row
	}

	row = append(row, result.Test, result.Mode, result.CompletedAt.Format(timeLayout),
		result.PrimaryCareer, strings.Join(result.TopThree, ", "))

	if result.Scores != nil {
		sc := result.Scores.Data()
		row = append(row, sc.R, sc.I, sc.A, sc.S, sc.E, sc.C)
	} else {
		row = append(row, "", "", "", "", "", "")
	}

	row = append(row, derefInt(result.Score), result.Form, result.Interpretation, derefInt(result.Correct))
	if result.Correct != nil {
		row = append(row, result.Total)
	} else {
		row = append(row, "")
	}
	return row
}

func writeXLSX(sheet string, headers []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(headers []interface{}, rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range append([][]interface{}{headers}, rows...) {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== HELPERS =====

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	h = strings.ReplaceAll(h, " ", "_")
	switch h {
	case "question_text", "question":
		return "text"
	case "number", "order":
		return "question_number"
	case "answer":
		return "correct_answer"
	}
	return h
}

func splitOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, opt := range strings.Split(raw, optionSep) {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

func isBlankRow(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) interface{} {
	if i == nil {
		return ""
	}
	return *i
}

func valueOrEmpty(v interface{}) interface{} {
	if v == nil {
		return ""
	}
	return v
}
