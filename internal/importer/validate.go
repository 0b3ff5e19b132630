package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/growthmap/internal/domain"
)

// ValidateCatalog checks the catalog for errors before conversion.
// Returns a slice of all validation errors found. Statuses this build does
// not know are accepted; they render with the locked fallback.
func ValidateCatalog(schema *CatalogSchema) []error {
	var errs []error

	if len(schema.Lessons) == 0 {
		errs = append(errs, fmt.Errorf("lessons: at least one lesson is required"))
	}

	seen := make(map[int]int, len(schema.Lessons))
	for i, l := range schema.Lessons {
		if l.ID <= 0 {
			errs = append(errs, fmt.Errorf("lessons[%d].id must be positive, got %d", i, l.ID))
		} else if prev, dup := seen[l.ID]; dup {
			errs = append(errs, fmt.Errorf("lessons[%d].id %d duplicates lessons[%d]", i, l.ID, prev))
		} else {
			seen[l.ID] = i
		}
		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, fmt.Errorf("lessons[%d].title is required", i))
		}
	}

	return errs
}

// UnknownStatuses lists the statuses in the catalog that this build renders
// with the locked fallback, for warning output.
func UnknownStatuses(schema *CatalogSchema) []string {
	var out []string
	seen := make(map[string]bool)
	for _, l := range schema.Lessons {
		status := strings.TrimSpace(l.Status)
		if status == "" || domain.LessonStatus(status).Known() || seen[status] {
			continue
		}
		seen[status] = true
		out = append(out, status)
	}
	return out
}
