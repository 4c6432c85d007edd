package persistence

import "strings"

// allowed sort fields per entity, keyed by the filter's OrderBy value
var (
	itemSortFields = map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"sku":        true,
		"quantity":   true,
		"cost":       true,
		"price":      true,
		"category":   true,
	}
	orderSortFields = map[string]bool{
		"created_at":    true,
		"updated_at":    true,
		"order_number":  true,
		"status":        true,
		"total_amount":  true,
		"expected_date": true,
		"received_date": true,
	}
	returnSortFields = map[string]bool{
		"created_at":    true,
		"updated_at":    true,
		"return_number": true,
		"status":        true,
		"return_type":   true,
	}
	partnerSortFields = map[string]bool{
		"created_at": true,
		"updated_at": true,
		"code":       true,
		"name":       true,
		"status":     true,
	}
	stockTransactionSortFields = map[string]bool{
		"created_at":       true,
		"transaction_type": true,
		"quantity_change":  true,
		"reference":        true,
	}
	auditLogSortFields = map[string]bool{
		"created_at": true,
		"entity":     true,
		"action":     true,
	}
)

// validateSortOrder normalizes the sort direction, falling back to desc
func validateSortOrder(order string) string {
	switch strings.ToLower(order) {
	case "asc":
		return "asc"
	case "desc":
		return "desc"
	default:
		return "desc"
	}
}

// validateSortField returns the field if it is allowed for the entity,
// otherwise the fallback column
func validateSortField(field string, allowed map[string]bool, fallback string) string {
	if allowed[strings.ToLower(field)] {
		return strings.ToLower(field)
	}
	return fallback
}
