package scan

import "pr-security-service/internal/model"

// Weights задаёт штраф к скору за одну находку каждого уровня критичности.
type Weights map[model.Severity]int

// DefaultWeights возвращает веса критичности по умолчанию.
func DefaultWeights() Weights {
	return Weights{
		model.SeverityCritical: 25,
		model.SeverityHigh:     15,
		model.SeverityMedium:   5,
		model.SeverityLow:      2,
	}
}

// Score считает security-скор 0..100 для списка находок:
// 100 минус сумма штрафов, с нижней границей 0.
func Score(vulns []model.Vulnerability, w Weights) int {
	score := 100
	for _, v := range vulns {
		score -= w[v.Severity]
	}
	if score < 0 {
		return 0
	}
	return score
}

// Recommend выводит рекомендацию по мержу. Правила применяются по порядку:
// BLOCK — если среди добавленных есть critical или after-скор ниже 50;
// REVIEW — если среди добавленных есть high или after-скор ниже before-скора;
// иначе APPROVE.
func Recommend(added []model.Vulnerability, beforeScore, afterScore int) model.Recommendation {
	if containsSeverity(added, model.SeverityCritical) || afterScore < 50 {
		return model.RecommendationBlock
	}
	if containsSeverity(added, model.SeverityHigh) || afterScore < beforeScore {
		return model.RecommendationReview
	}
	return model.RecommendationApprove
}

func containsSeverity(vulns []model.Vulnerability, s model.Severity) bool {
	for _, v := range vulns {
		if v.Severity == s {
			return true
		}
	}
	return false
}

// CountBySeverity раскладывает список находок по уровням критичности.
func CountBySeverity(vulns []model.Vulnerability) model.SeverityCounts {
	var c model.SeverityCounts
	for _, v := range vulns {
		switch v.Severity {
		case model.SeverityCritical:
			c.Critical++
		case model.SeverityHigh:
			c.High++
		case model.SeverityMedium:
			c.Medium++
		case model.SeverityLow:
			c.Low++
		}
	}
	return c
}

// BuildSummary строит агрегированный итог задачи по результатам всех файлов.
// Скор "до" считается по множеству fixed ∪ unchanged, скор "после" — по added ∪ unchanged.
func BuildSummary(jobID, prID string, results []model.ScanResult, w Weights) model.SecuritySummary {
	var added, fixed, unchanged []model.Vulnerability
	for _, r := range results {
		added = append(added, r.Added...)
		fixed = append(fixed, r.Fixed...)
		unchanged = append(unchanged, r.Unchanged...)
	}

	before := append(append([]model.Vulnerability{}, fixed...), unchanged...)
	after := append(append([]model.Vulnerability{}, added...), unchanged...)

	beforeScore := Score(before, w)
	afterScore := Score(after, w)

	return model.SecuritySummary{
		JobID:          jobID,
		PullRequestID:  prID,
		BeforeScore:    beforeScore,
		AfterScore:     afterScore,
		Recommendation: Recommend(added, beforeScore, afterScore),
		AddedCounts:    CountBySeverity(added),
		FixedCounts:    CountBySeverity(fixed),
	}
}
