package catalog

// boolPtr is used where a spec's direction differs from the default.
func boolPtr(b bool) *bool { return &b }

// Default returns the built-in catalog. A YAML overlay can replace any
// category wholesale; see Load.
func Default() *Catalog {
	lowerBetter := boolPtr(false)

	escooter := &Category{
		Slug:    "escooter",
		Wrapper: "e-scooters",
		Specs: []SpecDefinition{
			{Key: "top_speed", Label: "top speed", Unit: "MPH", Format: FormatNumeric, DiffFormat: DiffFaster},
			{Key: "range", Label: "range", Unit: "miles", Format: FormatNumeric, DiffFormat: DiffLonger,
				Tooltip: "Manufacturer-claimed range under ideal conditions."},
			{Key: "motors", Label: "motor", Format: FormatMotorCount},
			{Key: "motor_power", Label: "motor power", Unit: "W", Format: FormatNumeric, DiffFormat: DiffMore},
			{Key: "battery_capacity", Label: "battery", Unit: "Wh", Format: FormatNumeric, DiffFormat: DiffLarger},
			{Key: "weight", Label: "weight", Unit: "lbs", HigherBetter: lowerBetter, Format: FormatNumeric, DiffFormat: DiffLighter},
			{Key: "max_load", Label: "max load", Unit: "lbs", Format: FormatNumeric, DiffFormat: DiffHigher},
			{Key: "charge_time", Label: "charge time", Unit: "hours", HigherBetter: lowerBetter, Format: FormatDecimal, DiffFormat: DiffShorter},
			{Key: "braking_distance", Label: "braking distance", Unit: "ft", HigherBetter: lowerBetter, Format: FormatNumeric, DiffFormat: DiffShorter,
				Tooltip: "Measured from 15 MPH on dry asphalt."},
			{Key: "suspension", Label: "suspension", Format: FormatRanked, DiffFormat: DiffSuspension,
				Ranking: []string{"none", "front", "rear", "dual"}},
			{Key: "tire_type", Label: "tire type", Format: FormatRanked, DiffFormat: DiffTireType,
				Ranking: []string{"solid", "honeycomb", "pneumatic"}},
			{Key: "tire_size", Label: "tire size", Unit: "\"", Format: FormatNumeric, DiffFormat: DiffLargerTires, Normalizer: "strip_units"},
			{Key: "water_resistance", Label: "water resistance", Format: FormatDisplay, DiffFormat: DiffWaterResist,
				Display: "water_resistance",
				Ranking: []string{"none", "ipx4", "ipx5", "ip54", "ipx6", "ipx7"}},
			{Key: "foldable_handlebars", Label: "foldable handlebars", Format: FormatBoolean, DiffFormat: DiffFoldableBars},
			{Key: "safety_features", Label: "safety features", Format: FormatFeatureCount, DiffFormat: DiffMore, MinDiff: 2},
			{Key: "deck_length", Label: "deck", Unit: "in", Format: FormatNumeric, DiffFormat: DiffLonger},
		},
		Overrides: map[string]string{
			"deck_length": "dimensions.deck_length",
			"deck_width":  "dimensions.deck_width",
		},
		Brackets: []PriceBracket{
			{Key: "budget", Min: 0, Max: 500, Label: "Budget"},
			{Key: "mid", Min: 500, Max: 1000, Label: "Mid-range"},
			{Key: "premium", Min: 1000, Max: 2000, Label: "Premium"},
			{Key: "performance", Min: 2000, Max: 0, Label: "Performance"},
		},
	}

	ebike := &Category{
		Slug:    "ebike",
		Wrapper: "e-bikes",
		Specs: []SpecDefinition{
			{Key: "top_speed", Label: "top speed", Unit: "MPH", Format: FormatNumeric, DiffFormat: DiffFaster},
			{Key: "range", Label: "range", Unit: "miles", Format: FormatNumeric, DiffFormat: DiffLonger},
			{Key: "motor_power", Label: "motor power", Unit: "W", Format: FormatNumeric, DiffFormat: DiffMore},
			{Key: "torque", Label: "torque", Unit: "Nm", Format: FormatNumeric, DiffFormat: DiffHigher},
			{Key: "battery_capacity", Label: "battery", Unit: "Wh", Format: FormatNumeric, DiffFormat: DiffLarger},
			{Key: "weight", Label: "weight", Unit: "lbs", HigherBetter: lowerBetter, Format: FormatNumeric, DiffFormat: DiffLighter},
			{Key: "gears", Label: "gears", Format: FormatNumeric, DiffFormat: DiffMore},
			{Key: "max_load", Label: "max load", Unit: "lbs", Format: FormatNumeric, DiffFormat: DiffHigher},
			{Key: "charge_time", Label: "charge time", Unit: "hours", HigherBetter: lowerBetter, Format: FormatDecimal, DiffFormat: DiffShorter},
			{Key: "suspension", Label: "suspension", Format: FormatRanked, DiffFormat: DiffSuspension,
				Ranking: []string{"none", "front", "full"}},
			{Key: "brake_type", Label: "brakes", Format: FormatRanked, DiffFormat: DiffBetter,
				Ranking: []string{"rim", "mechanical-disc", "hydraulic-disc"}},
			{Key: "water_resistance", Label: "water resistance", Format: FormatDisplay, DiffFormat: DiffWaterResist,
				Display: "water_resistance",
				Ranking: []string{"none", "ipx4", "ipx5", "ip54", "ipx6"}},
		},
		Brackets: []PriceBracket{
			{Key: "budget", Min: 0, Max: 1000, Label: "Budget"},
			{Key: "mid", Min: 1000, Max: 2000, Label: "Mid-range"},
			{Key: "premium", Min: 2000, Max: 3500, Label: "Premium"},
			{Key: "performance", Min: 3500, Max: 0, Label: "Performance"},
		},
	}

	eskateboard := &Category{
		Slug:    "eskateboard",
		Wrapper: "e-skateboards",
		Specs: []SpecDefinition{
			{Key: "top_speed", Label: "top speed", Unit: "MPH", Format: FormatNumeric, DiffFormat: DiffFaster},
			{Key: "range", Label: "range", Unit: "miles", Format: FormatNumeric, DiffFormat: DiffLonger},
			{Key: "motors", Label: "motor", Format: FormatMotorCount},
			{Key: "motor_power", Label: "motor power", Unit: "W", Format: FormatNumeric, DiffFormat: DiffMore},
			{Key: "weight", Label: "weight", Unit: "lbs", HigherBetter: lowerBetter, Format: FormatNumeric, DiffFormat: DiffLighter},
			{Key: "max_load", Label: "max load", Unit: "lbs", Format: FormatNumeric, DiffFormat: DiffHigher},
			{Key: "deck_length", Label: "deck", Unit: "in", Format: FormatNumeric, DiffFormat: DiffLonger},
		},
		Overrides: map[string]string{
			"deck_length": "deck.length",
			"deck_width":  "deck.width",
		},
	}

	euc := &Category{
		Slug:    "euc",
		Wrapper: "e-unicycles",
		Specs: []SpecDefinition{
			{Key: "top_speed", Label: "top speed", Unit: "MPH", Format: FormatNumeric, DiffFormat: DiffFaster},
			{Key: "range", Label: "range", Unit: "miles", Format: FormatNumeric, DiffFormat: DiffLonger},
			{Key: "motor_power", Label: "motor power", Unit: "W", Format: FormatNumeric, DiffFormat: DiffMore},
			{Key: "battery_capacity", Label: "battery", Unit: "Wh", Format: FormatNumeric, DiffFormat: DiffLarger},
			{Key: "weight", Label: "weight", Unit: "lbs", HigherBetter: lowerBetter, Format: FormatNumeric, DiffFormat: DiffLighter},
			{Key: "max_load", Label: "max load", Unit: "lbs", Format: FormatNumeric, DiffFormat: DiffHigher},
		},
	}

	return &Catalog{
		Categories: map[string]*Category{
			"escooter":    escooter,
			"ebike":       ebike,
			"eskateboard": eskateboard,
			"euc":         euc,
		},
		Aliases: map[string]string{
			"e-scooter":          "escooter",
			"e-scooters":         "escooter",
			"electric-scooter":   "escooter",
			"electric-scooters":  "escooter",
			"scooter":            "escooter",
			"e-bike":             "ebike",
			"e-bikes":            "ebike",
			"electric-bike":      "ebike",
			"electric-bikes":     "ebike",
			"bike":               "ebike",
			"e-skateboard":       "eskateboard",
			"e-skateboards":      "eskateboard",
			"electric-skateboard": "eskateboard",
			"e-unicycle":         "euc",
			"electric-unicycle":  "euc",
			"unicycle":           "euc",
		},
		Transforms: DefaultTransforms(),
		genericBrackets: []PriceBracket{
			{Key: "budget", Min: 0, Max: 750, Label: "Budget"},
			{Key: "mid", Min: 750, Max: 1500, Label: "Mid-range"},
			{Key: "premium", Min: 1500, Max: 0, Label: "Premium"},
		},
	}
}
