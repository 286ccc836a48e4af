package request_models

// PlanTripRequest is the body of POST /plan. Optional numeric fields are
// pointers so that an omitted value can be told apart from zero.
type PlanTripRequest struct {
	FromCity    string  `json:"from_city"`
	City        string  `json:"city"`
	Days        *int    `json:"days"`
	Budget      *int    `json:"budget"`
	Preferences *string `json:"preferences"`
}
