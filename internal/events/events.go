package events

import "time"

type CompareComputedEvent struct {
	Category     string    `json:"category"`
	ProductIDs   []string  `json:"product_ids"`
	Mode         string    `json:"mode"` // single, head_to_head, multi
	ComputedAt   time.Time `json:"computed_at"`
	AdvantageLen []int     `json:"advantage_len"`
}

type StatsRefreshedEvent struct {
	Category    string    `json:"category"`
	Products    int       `json:"products"`
	Brackets    int       `json:"brackets"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type ProductUpdatedEvent struct {
	Slug     string `json:"slug"`
	Category string `json:"category"`
}
