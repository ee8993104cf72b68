package application_test

import (
	"strings"
	"testing"

	"studentenfutter/internal/application"
	"studentenfutter/internal/domain"
	"studentenfutter/internal/locale"
)

func mustCatalog(t *testing.T) *locale.Catalog {
	t.Helper()
	catalog, err := locale.Bundled(locale.DefaultLocale)
	if err != nil {
		t.Fatalf("loading locales: %v", err)
	}
	return catalog
}

func TestFormatTodayLunches_Scenarios(t *testing.T) {
	catalog := mustCatalog(t)

	tests := []struct {
		name   string
		locale string
		items  []domain.MenuItem
		want   string
	}{
		{
			name:   "empty menu en",
			locale: "en-US",
			items:  nil,
			want:   "I am sorry. The canteen is closed today.",
		},
		{
			name:   "empty menu de",
			locale: "de-DE",
			items:  []domain.MenuItem{},
			want:   "Es tut mir Leid. Die Mensa hat heute geschlossen.",
		},
		{
			name:   "single dish keeps connective",
			locale: "en-US",
			items: []domain.MenuItem{
				{Name: "Schnitzel", Category: domain.CategoryMainDish, PriceStudent: "3.50"},
			},
			want: "Todays lunches for the canteen are  as well as Schnitzel for 3.50. Enjoy your meal!",
		},
		{
			name:   "two dishes de",
			locale: "de-DE",
			items: []domain.MenuItem{
				{Name: "Suppe", Category: domain.CategoryMainDish, PriceStudent: "2.00"},
				{Name: "Pasta", Category: domain.CategoryMainDish, PriceStudent: "3.00"},
			},
			want: "Heute gibt es in der Mensa Suppe für 2.00,  sowie Pasta für 3.00. Guten Appetit!",
		},
		{
			name:   "three dishes en",
			locale: "en-US",
			items: []domain.MenuItem{
				{Name: "Curry", Category: domain.CategoryMainDish, PriceStudent: "2.80"},
				{Name: "Pizza", Category: domain.CategoryMainDish, PriceStudent: "3.10"},
				{Name: "Salad", Category: domain.CategoryMainDish, PriceStudent: "1.90"},
			},
			want: "Todays lunches for the canteen are Curry for 2.80, Pizza for 3.10,  as well as Salad for 1.90. Enjoy your meal!",
		},
		{
			name:   "only sides and desserts",
			locale: "en-US",
			items: []domain.MenuItem{
				{Name: "Pommes", Category: domain.CategorySideDish, PriceStudent: "1.00"},
				{Name: "Pudding", Category: domain.CategoryDessert, PriceStudent: "0.80"},
			},
			want: "I am sorry. The canteen is closed today.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := application.FormatTodayLunches(tt.items, catalog.Translator(tt.locale))
			if got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestFormatTodayLunches_FiltersNonMainDishes(t *testing.T) {
	catalog := mustCatalog(t)

	items := []domain.MenuItem{
		{Name: "Reis", Category: domain.CategorySideDish, PriceStudent: "0.90"},
		{Name: "Gulasch", Category: domain.CategoryMainDish, PriceStudent: "3.20"},
		{Name: "Eis", Category: domain.CategoryDessert, PriceStudent: "1.10"},
		{Name: "Mystery", Category: "Aktion", PriceStudent: "9.99"},
		{Name: "Falafel", Category: domain.CategoryMainDish, PriceStudent: "2.70"},
	}

	for _, tag := range catalog.Tags() {
		t.Run(tag, func(t *testing.T) {
			tr := catalog.Translator(tag)
			got := application.FormatTodayLunches(items, tr)

			if !strings.HasPrefix(got, tr(locale.KeyTodayInTheCanteen)) {
				t.Errorf("missing header: %q", got)
			}
			if !strings.HasSuffix(got, tr(locale.KeyEnjoyYourMeal)) {
				t.Errorf("missing closing phrase: %q", got)
			}
			for _, want := range []string{"Gulasch", "3.20", "Falafel", "2.70"} {
				if !strings.Contains(got, want) {
					t.Errorf("output lacks %q: %q", want, got)
				}
			}
			for _, unwanted := range []string{"Reis", "Eis", "Mystery", "9.99"} {
				if strings.Contains(got, unwanted) {
					t.Errorf("output contains %q: %q", unwanted, got)
				}
			}
			if strings.Index(got, "Gulasch") > strings.Index(got, "Falafel") {
				t.Errorf("feed order not preserved: %q", got)
			}
		})
	}
}
