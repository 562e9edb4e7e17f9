package dto

// StrengthSet is one logged set submitted for analysis.
type StrengthSet struct {
	Reps      int     `json:"reps" validate:"gte=0"`
	Weight    float64 `json:"weight" validate:"gte=0"`
	Completed bool    `json:"completed"`
}

// StrengthRequest is the body of POST /analytics/strength. Stateless: the
// sets are analyzed and discarded, nothing is persisted.
type StrengthRequest struct {
	Sets []StrengthSet `json:"sets" validate:"required,min=1,dive"`
}

type WarmupSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type StrengthResponse struct {
	OneRepMax   float64     `json:"oneRepMax"`
	TotalVolume float64     `json:"totalVolume"`
	WarmupSets  []WarmupSet `json:"warmupSets"`
}
