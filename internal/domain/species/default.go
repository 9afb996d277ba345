package species

import "plantagotchi/internal/domain/plant"

const (
	Bean = "bean"
	Rose = "rose"
	Mint = "mint"
)

var defaultStages = []string{"seed", "sprout", "plant", "flower", "fruit"}

type StageInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

var stageInfo = map[string]StageInfo{
	"seed": {
		Key:         "seed",
		Name:        "Seed",
		Description: "Dormant but already reacting to its surroundings.",
		Duration:    "1-3 days",
	},
	"sprout": {
		Key:         "sprout",
		Name:        "Sprout",
		Description: "Germination. Especially sensitive to drought and cold.",
		Duration:    "3-7 days",
	},
	"plant": {
		Key:         "plant",
		Name:        "Plant",
		Description: "Active vegetative growth; leaves and stems form.",
		Duration:    "7-14 days",
	},
	"flower": {
		Key:         "flower",
		Name:        "Flowering",
		Description: "Buds and flowers form. Needs a stable microclimate.",
		Duration:    "7-10 days",
	},
	"fruit": {
		Key:         "fruit",
		Name:        "Fruiting",
		Description: "Final stage; fruit or seeds develop.",
		Duration:    "7-14 days",
	},
}

func Stage(key string) (StageInfo, bool) {
	info, ok := stageInfo[key]
	return info, ok
}

func StageName(key string) string {
	return Describe(key).Name
}

// Describe falls back to the bare key for stages without a description.
func Describe(key string) StageInfo {
	if info, ok := stageInfo[key]; ok {
		return info
	}
	return StageInfo{Key: key, Name: key}
}

// StageInfos describes a profile's stages in growth order.
func StageInfos(p plant.SpeciesProfile) []StageInfo {
	out := make([]StageInfo, 0, len(p.Stages))
	for _, key := range p.Stages {
		out = append(out, Describe(key))
	}
	return out
}

func Default() Catalog {
	return NewCatalog(beanEntry(), roseEntry(), mintEntry())
}

func fixed(d plant.StateDelta) func(plant.EnvironmentSnapshot) plant.StateDelta {
	return func(plant.EnvironmentSnapshot) plant.StateDelta { return d }
}

func beanEntry() Entry {
	return Entry{
		Profile: plant.SpeciesProfile{
			ID:          Bean,
			Name:        "Bean",
			Description: "Fast-growing annual legume. Thrives in stable conditions but is sensitive to cold, drafts and sudden microclimate changes.",
			Stages:      defaultStages,
			Optimal: plant.OptimalRanges{
				Water:       plant.Range{Min: 60, Max: 80},
				Light:       plant.Range{Min: 65, Max: 85},
				Temperature: plant.Range{Min: 18, Max: 26},
			},
			Tips: plant.CareTips{
				Watering:    "Water regularly and never let the soil dry out. Dry air quickly leads to wilting.",
				Temperature: "Handles cold and drafts poorly. Needs steady warmth.",
				Light:       "Needs bright light for fast growth and fruit set.",
				Ecosystem:   "Sensitive to abrupt changes. Stability matters more than perfect values.",
			},
		},
		Problems: []plant.ProblemDefinition{
			{
				ID:        "bean_root_fungus",
				Symptom:   "Leaves wilt and darken",
				RealCause: "fungus",
				Severity:  3,
				Treatment: plant.TreatmentFungicide,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.WaterLevel > 80 && env.SoilAeration < 50
				},
				Effect: fixed(plant.StateDelta{Health: -3, Immunity: -2, GrowthPoints: -0.5, StressLoad: 1}),
			},
			{
				ID:        "bean_temp_shock",
				Symptom:   "Leaves lose turgor",
				RealCause: "temperature_fluctuation",
				Severity:  2,
				Treatment: plant.TreatmentNone,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.TemperatureFluctuation > 4
				},
				Effect: fixed(plant.StateDelta{Immunity: -3, StressLoad: 1}),
			},
			{
				ID:        "bean_aphids",
				Symptom:   "Small bite marks on the leaves",
				RealCause: "pests",
				Severity:  2,
				Treatment: plant.TreatmentInsecticide,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.AirHumidity < 35 && env.Immunity < 50
				},
				Effect: fixed(plant.StateDelta{WaterLevel: -3, Immunity: -2, StressLoad: 1}),
			},
		},
	}
}

func roseEntry() Entry {
	return Entry{
		Profile: plant.SpeciesProfile{
			ID:          Rose,
			Name:        "Rose",
			Description: "Perennial ornamental with demanding microclimate needs. Tolerates waterlogged soil and stagnant air poorly.",
			Stages:      defaultStages,
			Optimal: plant.OptimalRanges{
				Water:       plant.Range{Min: 50, Max: 70},
				Light:       plant.Range{Min: 70, Max: 90},
				Temperature: plant.Range{Min: 15, Max: 24},
			},
			Tips: plant.CareTips{
				Watering:    "Water evenly without standing water. Overwatering sharply raises stress risk.",
				Temperature: "Prefers a cooler but stable microclimate.",
				Light:       "Needs plenty of light to set buds.",
				Ecosystem:   "Especially sensitive to imbalance between soil moisture and air.",
			},
		},
		Problems: []plant.ProblemDefinition{
			{
				ID:        "rose_powdery_mildew",
				Symptom:   "White coating on the leaves",
				RealCause: "fungus",
				Severity:  3,
				Treatment: plant.TreatmentFungicide,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.AirHumidity > 75 && env.AirFlow < 30
				},
				Effect: fixed(plant.StateDelta{Health: -4, Immunity: -2, StressLoad: 1}),
			},
			{
				ID:        "rose_bud_failure",
				Symptom:   "Buds do not open",
				RealCause: "low_light",
				Severity:  1,
				Treatment: plant.TreatmentNone,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.LightLevel < 60
				},
				Effect: fixed(plant.StateDelta{GrowthPoints: -1, Immunity: -1}),
			},
			{
				ID:        "rose_root_rot",
				Symptom:   "The plant wilts abruptly",
				RealCause: "fungus",
				Severity:  3,
				Treatment: plant.TreatmentFungicide,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.WaterLevel > 85 && env.SoilAeration < 45
				},
				Effect: fixed(plant.StateDelta{Health: -6, Immunity: -3, StressLoad: 2}),
			},
		},
	}
}

func mintEntry() Entry {
	return Entry{
		Profile: plant.SpeciesProfile{
			ID:          Mint,
			Name:        "Mint",
			Description: "Undemanding aromatic perennial that adapts well to changing conditions and has high ecosystem resilience.",
			Stages:      defaultStages,
			Optimal: plant.OptimalRanges{
				Water:       plant.Range{Min: 65, Max: 85},
				Light:       plant.Range{Min: 50, Max: 75},
				Temperature: plant.Range{Min: 16, Max: 25},
			},
			Tips: plant.CareTips{
				Watering:    "Likes moist soil and copes well with generous watering.",
				Temperature: "Tolerates temperature swings within room range.",
				Light:       "Grows in partial shade but does best in diffuse light.",
				Ecosystem:   "Compensates well for short disturbances.",
			},
		},
		Problems: []plant.ProblemDefinition{
			{
				ID:        "mint_overgrowth",
				Symptom:   "Leaves shrink and growth is uneven",
				RealCause: "overgrowth",
				Severity:  1,
				Treatment: plant.TreatmentNone,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.GrowthStreak > 6
				},
				Effect: fixed(plant.StateDelta{Immunity: -2, StressLoad: 1}),
			},
			{
				ID:        "mint_spider_mite",
				Symptom:   "Fine webbing appears on the leaves",
				RealCause: "pests",
				Severity:  2,
				Treatment: plant.TreatmentInsecticide,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.AirHumidity < 30 && env.Temperature > 26
				},
				Effect: fixed(plant.StateDelta{WaterLevel: -3, Immunity: -2, StressLoad: 1}),
			},
			{
				ID:        "mint_leaf_rot",
				Symptom:   "Lower leaves lose turgor",
				RealCause: "fungus",
				Severity:  2,
				Treatment: plant.TreatmentFungicide,
				Trigger: func(env plant.EnvironmentSnapshot) bool {
					return env.SoilAeration < 40
				},
				Effect: fixed(plant.StateDelta{Health: -2, Immunity: -1, StressLoad: 1}),
			},
		},
	}
}
