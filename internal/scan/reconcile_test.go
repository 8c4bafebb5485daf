package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pr-security-service/internal/model"
	"pr-security-service/internal/scan"
)

func vuln(category string, sev model.Severity, start, end int, title string) model.Vulnerability {
	return model.Vulnerability{
		Category:  category,
		Severity:  sev,
		Title:     title,
		StartLine: start,
		EndLine:   end,
	}
}

func TestReconcile(t *testing.T) {
	cfg := scan.DefaultReconcileConfig()

	tests := []struct {
		name          string
		before        []model.Vulnerability
		after         []model.Vulnerability
		wantAdded     int
		wantFixed     int
		wantUnchanged int
	}{
		{
			name:          "No category overlap: before becomes fixed, after becomes added",
			before:        []model.Vulnerability{vuln("sql-injection", model.SeverityHigh, 10, 12, "SQL injection")},
			after:         []model.Vulnerability{vuln("xss", model.SeverityMedium, 20, 22, "Reflected XSS")},
			wantAdded:     1,
			wantFixed:     1,
			wantUnchanged: 0,
		},
		{
			name:          "Shifted lines within tolerance match as unchanged",
			before:        []model.Vulnerability{vuln("hardcoded-secret", model.SeverityHigh, 5, 6, "Hardcoded secret")},
			after:         []model.Vulnerability{vuln("hardcoded-secret", model.SeverityHigh, 7, 8, "Hardcoded secret")},
			wantAdded:     0,
			wantFixed:     0,
			wantUnchanged: 1,
		},
		{
			name:          "Same category beyond tolerance does not match",
			before:        []model.Vulnerability{vuln("xss", model.SeverityMedium, 10, 12, "XSS")},
			after:         []model.Vulnerability{vuln("xss", model.SeverityMedium, 30, 32, "XSS")},
			wantAdded:     1,
			wantFixed:     1,
			wantUnchanged: 0,
		},
		{
			name:          "Exactly at tolerance boundary still matches",
			before:        []model.Vulnerability{vuln("xss", model.SeverityMedium, 10, 10, "XSS")},
			after:         []model.Vulnerability{vuln("xss", model.SeverityMedium, 15, 15, "XSS")},
			wantAdded:     0,
			wantFixed:     0,
			wantUnchanged: 1,
		},
		{
			name:          "Empty before: everything is added",
			before:        nil,
			after:         []model.Vulnerability{vuln("xss", model.SeverityLow, 1, 1, "XSS")},
			wantAdded:     1,
			wantFixed:     0,
			wantUnchanged: 0,
		},
		{
			name:          "Empty after: everything is fixed",
			before:        []model.Vulnerability{vuln("xss", model.SeverityLow, 1, 1, "XSS")},
			after:         nil,
			wantAdded:     0,
			wantFixed:     1,
			wantUnchanged: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan.Reconcile(tt.before, tt.after, cfg)

			assert.Len(t, got.Added, tt.wantAdded)
			assert.Len(t, got.Fixed, tt.wantFixed)
			assert.Len(t, got.Unchanged, tt.wantUnchanged)

			// Три множества попарно не пересекаются и вместе покрывают все находки
			total := len(got.Added) + len(got.Fixed) + len(got.Unchanged)
			assert.Equal(t, len(tt.after)+len(tt.before)-len(got.Unchanged), total)
		})
	}
}

func TestReconcile_ScenarioNoOverlap(t *testing.T) {
	before := []model.Vulnerability{vuln("sql-injection", model.SeverityHigh, 10, 12, "SQL injection in query")}
	after := []model.Vulnerability{vuln("xss", model.SeverityMedium, 20, 22, "Reflected XSS in template")}

	got := scan.Reconcile(before, after, scan.DefaultReconcileConfig())

	assert.Len(t, got.Fixed, 1)
	assert.Equal(t, "sql-injection", got.Fixed[0].Category)
	assert.Len(t, got.Added, 1)
	assert.Equal(t, "xss", got.Added[0].Category)
	assert.Empty(t, got.Unchanged)
}

func TestReconcile_UnchangedUsesHeadData(t *testing.T) {
	before := []model.Vulnerability{vuln("hardcoded-secret", model.SeverityHigh, 5, 6, "Secret in config")}
	after := []model.Vulnerability{vuln("hardcoded-secret", model.SeverityHigh, 7, 8, "Secret in config")}

	got := scan.Reconcile(before, after, scan.DefaultReconcileConfig())

	assert.Len(t, got.Unchanged, 1)
	// У сохранившейся находки должны быть строки head-версии
	assert.Equal(t, 7, got.Unchanged[0].StartLine)
	assert.Equal(t, 8, got.Unchanged[0].EndLine)
}

func TestReconcile_AmbiguousCandidatesPickClosest(t *testing.T) {
	// Одна before-находка и два кандидата в after той же категории.
	// Совпасть должен более близкий по строкам и критичности кандидат.
	before := []model.Vulnerability{vuln("xss", model.SeverityHigh, 10, 12, "XSS in handler")}
	after := []model.Vulnerability{
		vuln("xss", model.SeverityLow, 15, 16, "XSS somewhere else"),
		vuln("xss", model.SeverityHigh, 11, 13, "XSS in handler"),
	}

	got := scan.Reconcile(before, after, scan.DefaultReconcileConfig())

	assert.Len(t, got.Unchanged, 1)
	assert.Equal(t, model.SeverityHigh, got.Unchanged[0].Severity)
	assert.Len(t, got.Added, 1)
	assert.Equal(t, model.SeverityLow, got.Added[0].Severity)
	assert.Empty(t, got.Fixed)
}

func TestReconcile_TieBreakIsDeterministic(t *testing.T) {
	// Два одинаковых кандидата: при равной похожести выигрывает пара
	// с меньшими исходными индексами.
	before := []model.Vulnerability{
		vuln("xss", model.SeverityMedium, 10, 10, "XSS"),
		vuln("xss", model.SeverityMedium, 10, 10, "XSS"),
	}
	after := []model.Vulnerability{
		vuln("xss", model.SeverityMedium, 10, 10, "XSS"),
	}

	first := scan.Reconcile(before, after, scan.DefaultReconcileConfig())
	for i := 0; i < 10; i++ {
		again := scan.Reconcile(before, after, scan.DefaultReconcileConfig())
		assert.Equal(t, first, again)
	}

	assert.Len(t, first.Unchanged, 1)
	assert.Len(t, first.Fixed, 1)
	assert.Empty(t, first.Added)
}

func TestReconcile_Idempotent(t *testing.T) {
	before := []model.Vulnerability{
		vuln("sql-injection", model.SeverityCritical, 3, 5, "SQL injection"),
		vuln("xss", model.SeverityMedium, 40, 42, "XSS"),
		vuln("hardcoded-secret", model.SeverityHigh, 100, 100, "Secret"),
	}
	after := []model.Vulnerability{
		vuln("xss", model.SeverityMedium, 44, 46, "XSS"),
		vuln("path-traversal", model.SeverityHigh, 10, 12, "Path traversal"),
		vuln("hardcoded-secret", model.SeverityHigh, 102, 102, "Secret"),
	}

	first := scan.Reconcile(before, after, scan.DefaultReconcileConfig())
	second := scan.Reconcile(before, after, scan.DefaultReconcileConfig())

	assert.Equal(t, first, second)
}
