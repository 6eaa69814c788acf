package models

import "github.com/gosimple/slug"

// DecorItem is a purchasable decoration from the fixed catalog.
type DecorItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Cost  int64  `json:"cost"`
}

// DecorCatalog is the fixed shop inventory. IDs are slugs of the display
// names; owned rows reference them, so never re-slug an existing entry.
var DecorCatalog = buildDecorCatalog()

func buildDecorCatalog() map[string]DecorItem {
	items := []DecorItem{
		{Name: "Golden Goalposts", Emoji: "🥅", Cost: 750},
		{Name: "Team Mascot Statue", Emoji: "🗿", Cost: 500},
		{Name: "Victory Fountain", Emoji: "⛲", Cost: 1200},
		{Name: "Retro Scoreboard", Emoji: "🔢", Cost: 600},
		{Name: "Tailgate Grill Zone", Emoji: "🍔", Cost: 400},
		{Name: "Championship Banner", Emoji: "🏆", Cost: 2000},
	}
	catalog := make(map[string]DecorItem, len(items))
	for _, it := range items {
		it.ID = slug.Make(it.Name)
		catalog[it.ID] = it
	}
	return catalog
}
