package processhandler

import (
	dbmodels "recruitment-backend/models/db"
	"sort"
)

// reorderStages переносит этап на позицию newOrder, остальные сдвигаются, нумерация с 1 без пропусков.
// Первый этап ("Aplicación") всегда остается первым.
func reorderStages(list []dbmodels.Stage, stageID string, newOrder int) (result []dbmodels.Stage, changed bool) {
	sorted := make([]dbmodels.Stage, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StageOrder < sorted[j].StageOrder
	})
	if newOrder < 2 {
		newOrder = 2
	}
	var moved *dbmodels.Stage
	rest := make([]dbmodels.Stage, 0, len(sorted))
	for k, rec := range sorted {
		if rec.ID == stageID && k != 0 {
			moved = &sorted[k]
			continue
		}
		rest = append(rest, rec)
	}
	if moved == nil {
		return sorted, false
	}
	if newOrder > len(sorted) {
		newOrder = len(sorted)
	}
	result = make([]dbmodels.Stage, 0, len(sorted))
	result = append(result, rest[:newOrder-1]...)
	result = append(result, *moved)
	result = append(result, rest[newOrder-1:]...)
	return renumber(result, sorted)
}

// renumber проставляет порядок 1..n, changed - изменился ли порядок хотя бы одного этапа
func renumber(list []dbmodels.Stage, before []dbmodels.Stage) (result []dbmodels.Stage, changed bool) {
	oldOrders := make(map[string]int, len(before))
	for _, rec := range before {
		oldOrders[rec.ID] = rec.StageOrder
	}
	result = make([]dbmodels.Stage, 0, len(list))
	for k, rec := range list {
		rec.StageOrder = k + 1
		if oldOrders[rec.ID] != rec.StageOrder {
			changed = true
		}
		result = append(result, rec)
	}
	return result, changed
}
