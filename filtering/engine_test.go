package filtering_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsmart/catalog"
	"shopsmart/catalog/catalogtest"
	"shopsmart/filtering"
	"shopsmart/models"
)

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func criteriaFor(c *catalog.Catalog, mutate func(*models.FilterCriteria)) models.FilterCriteria {
	criteria := models.DefaultFilterCriteria(c.MaxPriceBound())
	if mutate != nil {
		mutate(&criteria)
	}
	return criteria
}

func TestComputeVisible_ExampleScenario(t *testing.T) {
	c := catalogtest.Example()
	got := filtering.ComputeVisible(c, criteriaFor(c, nil))
	if diff := cmp.Diff([]string{"B", "A"}, ids(got)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeVisible_Sorts(t *testing.T) {
	c := catalogtest.Mixed()
	tests := []struct {
		sort string
		want []string
	}{
		{"featured", []string{"tent", "lamp", "hoodie", "mug", "socks", "boots"}},
		{"price-asc", []string{"mug", "socks", "hoodie", "lamp", "tent", "boots"}},
		{"price-desc", []string{"boots", "tent", "lamp", "hoodie", "mug", "socks"}},
		{"rating", []string{"tent", "hoodie", "boots", "mug", "socks", "lamp"}},
		{"new", []string{"tent", "lamp", "socks", "hoodie", "boots", "mug"}},
		{"bogus", []string{"tent", "lamp", "hoodie", "mug", "socks", "boots"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			criteria := criteriaFor(c, func(fc *models.FilterCriteria) {
				fc.Sort = models.ParseSortMode(tt.sort)
			})
			if diff := cmp.Diff(tt.want, ids(filtering.ComputeVisible(c, criteria))); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeVisible_Filters(t *testing.T) {
	c := catalogtest.Mixed()
	tests := []struct {
		name   string
		mutate func(*models.FilterCriteria)
		want   []string
	}{
		{"category", func(fc *models.FilterCriteria) { fc.Category = "apparel" }, []string{"hoodie", "socks"}},
		{"tag", func(fc *models.FilterCriteria) { fc.Tag = "winter" }, []string{"tent", "hoodie", "boots"}},
		{"price", func(fc *models.FilterCriteria) { fc.SelectedPrice = decimal.NewFromInt(89) }, []string{"lamp", "hoodie", "mug", "socks"}},
		{"search tag", func(fc *models.FilterCriteria) { fc.SearchText = "ceramic" }, []string{"lamp", "mug"}},
		{"search name and description", func(fc *models.FilterCriteria) { fc.SearchText = "trail" }, []string{"tent", "mug", "socks"}},
		{"intersection", func(fc *models.FilterCriteria) {
			fc.Category = "outdoor"
			fc.Tag = "winter"
			fc.SelectedPrice = decimal.NewFromInt(500)
		}, []string{"tent"}},
		{"unknown category", func(fc *models.FilterCriteria) { fc.Category = "garden" }, []string{}},
		{"zero price", func(fc *models.FilterCriteria) { fc.SelectedPrice = decimal.Zero }, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filtering.ComputeVisible(c, criteriaFor(c, tt.mutate))
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("visible mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func allCriteria(c *catalog.Catalog) []models.FilterCriteria {
	var out []models.FilterCriteria
	categories := append([]string{models.FilterAll}, c.Categories()...)
	tags := append([]string{models.FilterAll}, c.Tags()...)
	searches := []string{"", "trail", "ceramic", "zzz"}
	prices := []int64{0, 12, 50, 320, 1250}
	sorts := []models.SortMode{models.SortFeatured, models.SortPriceAsc, models.SortPriceDesc, models.SortRating, models.SortNew}
	for _, cat := range categories {
		for _, tag := range tags {
			for _, s := range searches {
				for _, price := range prices {
					for _, mode := range sorts {
						fc := models.DefaultFilterCriteria(c.MaxPriceBound())
						fc.Category, fc.Tag, fc.SearchText = cat, tag, s
						fc.SelectedPrice = decimal.NewFromInt(price)
						fc.Sort = mode
						out = append(out, fc)
					}
				}
			}
		}
	}
	return out
}

func TestComputeVisible_Idempotent(t *testing.T) {
	c := catalogtest.Mixed()
	for _, fc := range allCriteria(c) {
		first := ids(filtering.ComputeVisible(c, fc))
		second := ids(filtering.ComputeVisible(c, fc))
		require.Equal(t, first, second, "criteria %+v", fc)
	}
}

func TestComputeVisible_PriceMonotonic(t *testing.T) {
	c := catalogtest.Mixed()
	low := criteriaFor(c, func(fc *models.FilterCriteria) { fc.SelectedPrice = decimal.NewFromInt(45) })
	for _, ceiling := range []int64{45, 89, 320, 1250} {
		high := low
		high.SelectedPrice = decimal.NewFromInt(ceiling)
		wider := make(map[string]bool)
		for _, p := range filtering.ComputeVisible(c, high) {
			wider[p.ID] = true
		}
		for _, p := range filtering.ComputeVisible(c, low) {
			assert.True(t, wider[p.ID], "%s visible at 45 but not at %d", p.ID, ceiling)
		}
	}
}

func TestComputeVisible_FeaturedStable(t *testing.T) {
	c := catalogtest.Mixed()
	got := filtering.ComputeVisible(c, criteriaFor(c, nil))

	lastNew := -1
	for i, p := range got {
		if p.IsNew {
			assert.Equal(t, lastNew+1, i, "new products must lead")
			lastNew = i
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].IsNew == got[i].IsNew {
			assert.Less(t, c.Position(got[i-1].ID), c.Position(got[i].ID),
				"equal-key products must keep catalog order")
		}
	}
}

func TestComputeVisible_FreshSlice(t *testing.T) {
	c := catalogtest.Example()
	fc := criteriaFor(c, nil)
	first := filtering.ComputeVisible(c, fc)
	first[0].Name = "mutated"
	second := filtering.ComputeVisible(c, fc)
	assert.NotEqual(t, "mutated", second[0].Name)
}

func TestTagChips(t *testing.T) {
	c := catalogtest.Example()

	chips := filtering.TagChips(c, "sale")
	want := []models.TagChip{
		{Tag: "all", Label: "All tags", Active: false},
		{Tag: "new", Label: "new", Active: false},
		{Tag: "sale", Label: "sale", Active: true},
	}
	assert.Equal(t, want, chips)

	chips = filtering.TagChips(c, models.FilterAll)
	assert.True(t, chips[0].Active)
	for _, chip := range chips[1:] {
		assert.False(t, chip.Active)
	}
}
