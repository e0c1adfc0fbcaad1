package pagination

import "testing"

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		req       PageRequest
		want      []int
		wantPages int
	}{
		{"first page", PageRequest{Page: 1, PageSize: 2}, []int{1, 2}, 3},
		{"last partial page", PageRequest{Page: 3, PageSize: 2}, []int{5}, 3},
		{"past the end", PageRequest{Page: 9, PageSize: 2}, []int{}, 3},
		{"defaults", PageRequest{}, []int{1, 2, 3, 4, 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slice(items, tt.req)
			if len(got.Data) != len(tt.want) {
				t.Fatalf("got %v, want %v", got.Data, tt.want)
			}
			for i := range tt.want {
				if got.Data[i] != tt.want[i] {
					t.Errorf("item %d: got %d, want %d", i, got.Data[i], tt.want[i])
				}
			}
			if got.TotalItems != 5 || got.TotalPages != tt.wantPages {
				t.Errorf("got %d items over %d pages", got.TotalItems, got.TotalPages)
			}
		})
	}
}

func TestPageRequestDefaults(t *testing.T) {
	p := PageRequest{}
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 || p.Offset() != 0 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}
