package enums

import "fmt"

// SortOrder selects the ordering applied to list endpoints.
type SortOrder string

const (
	SortOrderLatest     SortOrder = "LATEST"
	SortOrderOldest     SortOrder = "OLDEST"
	SortOrderPopularity SortOrder = "POPULARITY"
	SortOrderRelevance  SortOrder = "RELEVANCE"
)

var validSortOrders = []SortOrder{
	SortOrderLatest,
	SortOrderOldest,
	SortOrderPopularity,
	SortOrderRelevance,
}

// String implements fmt.Stringer.
func (s SortOrder) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortOrder.
func (s SortOrder) IsValid() bool {
	for _, candidate := range validSortOrders {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortOrder converts raw input into a SortOrder.
func ParseSortOrder(value string) (SortOrder, error) {
	for _, candidate := range validSortOrders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
