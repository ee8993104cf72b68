package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type Category string

// Categories as the canteen feed spells them.
const (
	CategoryMainDish Category = "Hauptgericht"
	CategorySideDish Category = "Beilagen"
	CategoryDessert  Category = "Nachspeise"
)

type MenuItem struct {
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	PriceStudent Price    `json:"priceStudent"`
}

func (m MenuItem) IsMainDish() bool {
	return m.Category == CategoryMainDish
}

// Price is the student price as display text. The feed sends it either as a
// string ("3.50") or as a number (3.5); numbers are rendered without
// trailing zeros.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding price string: %w", err)
		}
		*p = Price(s)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("price must be a string or number, got %s", data)
	}
	*p = Price(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (p Price) String() string {
	return string(p)
}

// MainDishes keeps only main dishes, in feed order.
func MainDishes(items []MenuItem) []MenuItem {
	var mains []MenuItem
	for _, item := range items {
		if item.IsMainDish() {
			mains = append(mains, item)
		}
	}
	return mains
}
