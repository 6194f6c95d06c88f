package services

import (
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"gorm.io/datatypes"
)

// newTestResult maps an engine result onto the stored record.
func newTestResult(respondentID string, res *scoring.Result) *models.TestResult {
	record := &models.TestResult{
		RespondentID: respondentID,
		Test:         res.Test,
		Mode:         string(res.Mode),
		CompletedAt:  res.CompletedAt,
	}

	if in := res.Interest; in != nil {
		scores := datatypes.NewJSONType(models.CategoryScores{
			R: in.Scores.R,
			I: in.Scores.I,
			A: in.Scores.A,
			S: in.Scores.S,
			E: in.Scores.E,
			C: in.Scores.C,
		})
		record.Scores = &scores

		ranking := make([]models.RankedCategory, 0, len(in.TopThree))
		topThree := make([]string, 0, len(in.TopThree))
		for _, rc := range in.TopThree {
			ranking = append(ranking, models.RankedCategory{
				Category: string(rc.Category),
				Label:    rc.Label,
				Score:    rc.Score,
			})
			topThree = append(topThree, rc.Category.DisplayName())
		}
		record.Ranking = ranking
		record.TopThree = topThree
		record.PrimaryCareer = in.Primary.Category.DisplayName()
		record.RecommendedCareers = append([]string{}, in.SuggestedCareers...)
	}

	if sc := res.Scale; sc != nil {
		score := sc.Score
		record.Score = &score
		record.QuestionCount = sc.QuestionCount
		record.Form = string(sc.Form)
		record.Interpretation = sc.Interpretation
		record.Feedback = sc.Feedback
	}

	if ch := res.Choice; ch != nil {
		correct := ch.Correct
		record.Correct = &correct
		record.Total = ch.Total
	}

	return record
}

func newSubmitResponse(record *models.TestResult) *SubmitResponse {
	resp := &SubmitResponse{FullResult: record}
	if record.Scores != nil {
		scores := record.Scores.Data()
		resp.Scores = &scores
		resp.TopThree = record.TopThree
		resp.PrimaryCareer = record.PrimaryCareer
		resp.RecommendedCareers = record.RecommendedCareers
	}
	return resp
}
