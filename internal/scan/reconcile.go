// Package scan содержит чистую логику сопоставления находок детектора между
// base- и head-версиями файла и подсчёта security-скора pull request'а.
package scan

import (
	"sort"
	"strings"

	"pr-security-service/internal/model"
)

// ReconcileConfig задаёт параметры сопоставления находок.
// Параметры вынесены в конфигурацию, а не зашиты в код: допуск по строкам зависит
// от характера диффов, а веса похожести подбираются эмпирически.
type ReconcileConfig struct {
	// LineTolerance — максимальное расстояние между диапазонами строк (в строках),
	// при котором находки ещё считаются кандидатами на совпадение. Компенсирует
	// сдвиг нумерации строк из-за несвязанных правок в том же файле.
	LineTolerance int
	// SeverityBonus — прибавка к похожести за совпадение критичности.
	SeverityBonus float64
	// TextWeight — вес текстовой похожести заголовка и описания.
	TextWeight float64
}

// DefaultReconcileConfig возвращает параметры сопоставления по умолчанию.
func DefaultReconcileConfig() ReconcileConfig {
	return ReconcileConfig{
		LineTolerance: 5,
		SeverityBonus: 0.5,
		TextWeight:    0.25,
	}
}

// ReconcileResult содержит три непересекающихся множества находок.
// Их объединение покрывает все находки, наблюдавшиеся на base- и head-версии файла.
type ReconcileResult struct {
	Added     []model.Vulnerability
	Fixed     []model.Vulnerability
	Unchanged []model.Vulnerability
}

// candidate — допустимая пара (before, after) с её похожестью.
type candidate struct {
	beforeIdx int
	afterIdx  int
	score     float64
}

// Reconcile сопоставляет находки base-версии (before) и head-версии (after) одного файла.
//
// Пара допустима, только если категории совпадают и диапазоны строк находятся в пределах
// LineTolerance. Среди допустимых пар считается похожесть (совпадение критичности,
// близость диапазонов, текстовая похожесть), после чего выполняется жадное сопоставление:
// берётся лучшая оставшаяся пара, её концы исключаются, и так до исчерпания кандидатов.
// Равные по похожести пары упорядочиваются по исходным индексам (before, затем after),
// поэтому результат детерминирован при фиксированном порядке входных списков.
//
// Жадный алгоритм выбран вместо оптимального паросочетания осознанно: ложное слияние
// двух разных находок вреднее, чем изредка упущенная оптимальная пара.
func Reconcile(before, after []model.Vulnerability, cfg ReconcileConfig) ReconcileResult {
	candidates := make([]candidate, 0)
	for bi, b := range before {
		for ai, a := range after {
			if b.Category != a.Category {
				continue
			}
			dist := lineDistance(b, a)
			if dist > cfg.LineTolerance {
				continue
			}
			candidates = append(candidates, candidate{
				beforeIdx: bi,
				afterIdx:  ai,
				score:     pairScore(b, a, dist, cfg),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].beforeIdx != candidates[j].beforeIdx {
			return candidates[i].beforeIdx < candidates[j].beforeIdx
		}
		return candidates[i].afterIdx < candidates[j].afterIdx
	})

	matchedBefore := make(map[int]bool, len(before))
	matchedAfter := make(map[int]bool, len(after))

	res := ReconcileResult{
		Added:     make([]model.Vulnerability, 0),
		Fixed:     make([]model.Vulnerability, 0),
		Unchanged: make([]model.Vulnerability, 0),
	}

	for _, c := range candidates {
		if matchedBefore[c.beforeIdx] || matchedAfter[c.afterIdx] {
			continue
		}
		matchedBefore[c.beforeIdx] = true
		matchedAfter[c.afterIdx] = true
		// У сохранившейся находки берём актуальные данные head-версии
		res.Unchanged = append(res.Unchanged, after[c.afterIdx])
	}

	for bi, b := range before {
		if !matchedBefore[bi] {
			res.Fixed = append(res.Fixed, b)
		}
	}
	for ai, a := range after {
		if !matchedAfter[ai] {
			res.Added = append(res.Added, a)
		}
	}

	return res
}

// lineDistance возвращает расстояние между диапазонами строк двух находок:
// 0 при пересечении, иначе размер разрыва между диапазонами.
func lineDistance(a, b model.Vulnerability) int {
	if a.StartLine <= b.EndLine && b.StartLine <= a.EndLine {
		return 0
	}
	if a.EndLine < b.StartLine {
		return b.StartLine - a.EndLine
	}
	return a.StartLine - b.EndLine
}

// pairScore считает похожесть допустимой пары: близость диапазонов строк,
// бонус за совпадение критичности и текстовая похожесть как тай-брейк.
func pairScore(b, a model.Vulnerability, dist int, cfg ReconcileConfig) float64 {
	score := 1.0 - float64(dist)/float64(cfg.LineTolerance+1)
	if b.Severity == a.Severity {
		score += cfg.SeverityBonus
	}
	score += cfg.TextWeight * textSimilarity(b, a)
	return score
}

// textSimilarity возвращает долю общих слов в заголовке и описании двух находок (0..1).
func textSimilarity(a, b model.Vulnerability) float64 {
	wordsA := strings.Fields(strings.ToLower(a.Title + " " + a.Description))
	wordsB := strings.Fields(strings.ToLower(b.Title + " " + b.Description))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	overlap := 0
	for _, w := range wordsA {
		if setB[w] {
			overlap++
		}
	}

	minLen := len(wordsA)
	if len(wordsB) < minLen {
		minLen = len(wordsB)
	}
	return float64(overlap) / float64(minLen)
}
