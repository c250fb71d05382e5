package enums

import "testing"

func TestParseSortOrder(t *testing.T) {
	cases := []struct {
		input   string
		want    SortOrder
		wantErr bool
	}{
		{"LATEST", SortOrderLatest, false},
		{"OLDEST", SortOrderOldest, false},
		{"POPULARITY", SortOrderPopularity, false},
		{"RELEVANCE", SortOrderRelevance, false},
		{"latest", "", true},
		{"", "", true},
		{"NEWEST", "", true},
	}
	for _, tc := range cases {
		got, err := ParseSortOrder(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseSortOrder(%q): expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSortOrder(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseSortOrder(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSortOrderIsValid(t *testing.T) {
	for _, order := range []SortOrder{SortOrderLatest, SortOrderOldest, SortOrderPopularity, SortOrderRelevance} {
		if !order.IsValid() {
			t.Fatalf("%q should be valid", order)
		}
	}
	if SortOrder("PRICE").IsValid() {
		t.Fatal("unknown sort order should be invalid")
	}
}
