package response_models

type PlaceCategory string

const (
	CategoryAttraction PlaceCategory = "attraction"
	CategoryRestaurant PlaceCategory = "restaurant"
)

type Place struct {
	Name      string        `json:"name"`
	Category  PlaceCategory `json:"type"`
	Latitude  float64       `json:"lat"`
	Longitude float64       `json:"lon"`
}

type ForecastDay struct {
	Date        string  `json:"date"`
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	RainMM      float64 `json:"rain_mm"`
	WeatherCode int     `json:"weather_code"`
}

type BudgetCategories struct {
	Stay      int `json:"stay"`
	Food      int `json:"food"`
	Transport int `json:"transport"`
	Tickets   int `json:"tickets"`
	Misc      int `json:"misc"`
}

func (b BudgetCategories) Total() int {
	return b.Stay + b.Food + b.Transport + b.Tickets + b.Misc
}

// TripPlan is the finalized snapshot returned to clients.
type TripPlan struct {
	FromCity    string `json:"from_city"`
	City        string `json:"city"`
	Days        int    `json:"days"`
	Budget      int    `json:"budget"`
	Preferences string `json:"preferences"`

	WikiSummary    string        `json:"wiki_summary"`
	TopAttractions []Place       `json:"top_attractions"`
	Restaurants    []Place       `json:"restaurants"`
	Weather        []ForecastDay `json:"weather"`

	TravelPlan       string           `json:"travel_plan"`
	Itinerary        string           `json:"itinerary"`
	BudgetBreakdown  string           `json:"budget_breakdown"`
	BudgetCategories BudgetCategories `json:"budget_categories"`

	Warnings []string `json:"warnings"`
}
