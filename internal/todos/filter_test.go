package todos

import (
	"reflect"
	"testing"
)

func sampleItems() []Item {
	return []Item{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B", Completed: true},
		{ID: 3, Title: "C"},
		{ID: 4, Title: "D", Completed: true},
	}
}

func TestApply(t *testing.T) {
	items := sampleItems()

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"all", FilterAll, []int64{1, 2, 3, 4}},
		{"active", FilterActive, []int64{1, 3}},
		{"completed", FilterCompleted, []int64{2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(items, tt.filter)
			ids := make([]int64, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Fatalf("Apply(%s) ids = %v, want %v", tt.filter, ids, tt.want)
			}
		})
	}
}

func TestApply_AllIsUnchangedCopy(t *testing.T) {
	items := sampleItems()
	got := Apply(items, FilterAll)
	if !reflect.DeepEqual(got, items) {
		t.Fatalf("Apply(all) = %#v, want %#v", got, items)
	}
	got[0].Title = "changed"
	if items[0].Title != "A" {
		t.Fatalf("Apply(all) aliases input slice")
	}
}

func TestApply_PartitionsEveryItem(t *testing.T) {
	items := sampleItems()
	active := Apply(items, FilterActive)
	completed := Apply(items, FilterCompleted)
	if len(active)+len(completed) != len(items) {
		t.Fatalf("active(%d)+completed(%d) != %d", len(active), len(completed), len(items))
	}
	if CountActive(items) != len(active) || CountCompleted(items) != len(completed) {
		t.Fatalf("counts = %d/%d, want %d/%d", CountActive(items), CountCompleted(items), len(active), len(completed))
	}
}

func TestApply_Empty(t *testing.T) {
	if got := Apply(nil, FilterCompleted); got == nil || len(got) != 0 {
		t.Fatalf("Apply(nil) = %#v, want empty slice", got)
	}
}

func TestSingleActiveItemScenario(t *testing.T) {
	items := []Item{{ID: 1, Title: "A"}}
	if got := Apply(items, FilterCompleted); len(got) != 0 {
		t.Fatalf("completed = %#v, want empty", got)
	}
	if got := Apply(items, FilterActive); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("active = %#v, want [id 1]", got)
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"":            FilterAll,
		"all":         FilterAll,
		" Active ":    FilterActive,
		"COMPLETED":   FilterCompleted,
		"completed\n": FilterCompleted,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		if err != nil {
			t.Fatalf("ParseFilter(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFilter(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseFilter("done"); err == nil {
		t.Fatalf("ParseFilter(done) returned nil error")
	}
}

func TestFilterNextAndLabel(t *testing.T) {
	f := FilterAll
	seen := []string{}
	for i := 0; i < 4; i++ {
		seen = append(seen, f.Label())
		f = f.Next()
	}
	want := []string{"All", "Active", "Completed", "All"}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("cycle = %v, want %v", seen, want)
	}
	if got := Filter(9).String(); got != "filter(9)" {
		t.Fatalf("unknown filter String = %q", got)
	}
}
