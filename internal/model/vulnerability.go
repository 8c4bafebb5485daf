package model

// Severity представляет уровень критичности находки детектора.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityRank возвращает числовой ранг критичности (больше = серьёзнее).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Vulnerability описывает одну находку детектора: категорию (стабильный идентификатор
// класса уязвимости, например "sql-injection"), критичность, диапазон строк и текст.
type Vulnerability struct {
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartLine   int      `json:"start_line"`
	EndLine     int      `json:"end_line"`
}
