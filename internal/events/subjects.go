package events

const (
	SubjectProductUpdated = "gear.product.*.updated"

	StreamName   = "GEAR_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectCompareComputed(category string) string { return "gear.compare." + category + ".computed" }
func SubjectStatsRefreshed(category string) string  { return "gear.stats." + category + ".refreshed" }
func SubjectProductChanged(slug string) string      { return "gear.product." + slug + ".updated" }
