package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pr-security-service/internal/model"
	"pr-security-service/internal/scan"
)

func TestScore(t *testing.T) {
	w := scan.DefaultWeights()

	tests := []struct {
		name  string
		vulns []model.Vulnerability
		want  int
	}{
		{name: "Empty list gives perfect score", vulns: nil, want: 100},
		{
			name:  "Single high",
			vulns: []model.Vulnerability{{Severity: model.SeverityHigh}},
			want:  85,
		},
		{
			name:  "Single medium",
			vulns: []model.Vulnerability{{Severity: model.SeverityMedium}},
			want:  95,
		},
		{
			name: "Mixed severities",
			vulns: []model.Vulnerability{
				{Severity: model.SeverityCritical},
				{Severity: model.SeverityHigh},
				{Severity: model.SeverityLow},
			},
			want: 58,
		},
		{
			name: "Score is floored at zero",
			vulns: []model.Vulnerability{
				{Severity: model.SeverityCritical},
				{Severity: model.SeverityCritical},
				{Severity: model.SeverityCritical},
				{Severity: model.SeverityCritical},
				{Severity: model.SeverityCritical},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scan.Score(tt.vulns, w))
		})
	}
}

func TestScore_CriticalDecrementsByExactly25(t *testing.T) {
	w := scan.DefaultWeights()

	vulns := []model.Vulnerability{{Severity: model.SeverityMedium}}
	base := scan.Score(vulns, w)

	vulns = append(vulns, model.Vulnerability{Severity: model.SeverityCritical})
	assert.Equal(t, base-25, scan.Score(vulns, w))
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name        string
		added       []model.Vulnerability
		beforeScore int
		afterScore  int
		want        model.Recommendation
	}{
		{
			name:        "Clean scan approves",
			added:       nil,
			beforeScore: 85,
			afterScore:  95,
			want:        model.RecommendationApprove,
		},
		{
			name:        "Added critical blocks regardless of score",
			added:       []model.Vulnerability{{Severity: model.SeverityCritical}},
			beforeScore: 100,
			afterScore:  100,
			want:        model.RecommendationBlock,
		},
		{
			name:        "Low after-score blocks",
			added:       nil,
			beforeScore: 40,
			afterScore:  45,
			want:        model.RecommendationBlock,
		},
		{
			name:        "Added high requires review",
			added:       []model.Vulnerability{{Severity: model.SeverityHigh}},
			beforeScore: 85,
			afterScore:  85,
			want:        model.RecommendationReview,
		},
		{
			name:        "Score regression requires review",
			added:       []model.Vulnerability{{Severity: model.SeverityLow}},
			beforeScore: 95,
			afterScore:  93,
			want:        model.RecommendationReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan.Recommend(tt.added, tt.beforeScore, tt.afterScore)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSummary(t *testing.T) {
	results := []model.ScanResult{
		{
			FilePath: "a.go",
			Fixed:    []model.Vulnerability{{Category: "sql-injection", Severity: model.SeverityHigh}},
			Added:    []model.Vulnerability{{Category: "xss", Severity: model.SeverityMedium}},
		},
		{
			FilePath:  "b.go",
			Unchanged: []model.Vulnerability{{Category: "hardcoded-secret", Severity: model.SeverityLow}},
		},
	}

	sum := scan.BuildSummary("job-1", "pr-1", results, scan.DefaultWeights())

	// before = fixed + unchanged: high(15) + low(2); after = added + unchanged: medium(5) + low(2)
	assert.Equal(t, 83, sum.BeforeScore)
	assert.Equal(t, 93, sum.AfterScore)
	assert.Equal(t, model.RecommendationApprove, sum.Recommendation)
	assert.Equal(t, 1, sum.AddedCounts.Medium)
	assert.Equal(t, 1, sum.FixedCounts.High)
	assert.Equal(t, 0, sum.AddedCounts.Critical)
}
