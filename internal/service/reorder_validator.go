package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/metrics"
)

// ValidateReorder checks that requested is a permutation of current, the
// ids of the POIs in the tour. Foreign ids are reported first, then missing
// ids, then duplicates.
func ValidateReorder(current, requested []int64) error {
	inTour := make(map[int64]bool, len(current))
	for _, id := range current {
		inTour[id] = true
	}

	seen := make(map[int64]int, len(requested))
	var foreign []int64
	for _, id := range requested {
		if !inTour[id] && seen[id] == 0 {
			foreign = append(foreign, id)
		}
		seen[id]++
	}
	if len(foreign) > 0 {
		return reorderError("foreign", "POI ids do not belong to this tour: %s", formatIDs(foreign))
	}

	var missing []int64
	for _, id := range current {
		if seen[id] == 0 {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return reorderError("missing", "all POIs must be included, missing: %s", formatIDs(missing))
	}

	if len(requested) != len(seen) {
		return reorderError("duplicate", "duplicate POI ids not allowed")
	}
	return nil
}

func reorderError(reason, format string, args ...interface{}) error {
	metrics.ReorderRejections.WithLabelValues(reason).Inc()
	err := apperr.Validation(format, args...)
	return err.WithDetail("pois", err.Message)
}

// formatIDs renders ids sorted, as [3, 7, 9]
func formatIDs(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
