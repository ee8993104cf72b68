package application

import (
	"strings"

	"studentenfutter/internal/domain"
	"studentenfutter/internal/locale"
)

// ClosedMessage is spoken whenever there is nothing to announce, whether the
// menu is empty or could not be fetched.
func ClosedMessage(t locale.Translator) string {
	return t(locale.KeySorry) + " " + t(locale.KeyCanteenClosedToday)
}

// FormatTodayLunches renders the main dishes of items as one spoken sentence.
// The last dish is always introduced by the AS_WELL_AS connective, even when
// it is the only one.
func FormatTodayLunches(items []domain.MenuItem, t locale.Translator) string {
	mains := domain.MainDishes(items)
	if len(mains) == 0 {
		return ClosedMessage(t)
	}

	var b strings.Builder
	b.WriteString(t(locale.KeyTodayInTheCanteen))
	b.WriteString(" ")

	for i, dish := range mains {
		partial := dish.Name + " " + t(locale.KeyFor) + " " + dish.PriceStudent.String()

		if i != len(mains)-1 {
			b.WriteString(partial)
			b.WriteString(", ")
			continue
		}

		b.WriteString(" ")
		b.WriteString(t(locale.KeyAsWellAs))
		b.WriteString(" ")
		b.WriteString(partial)
		b.WriteString(". ")
		b.WriteString(t(locale.KeyEnjoyYourMeal))
	}

	return b.String()
}
