package models

// RunRequest triggers a research run over the read API.
type RunRequest struct {
	DaysBack int `query:"days_back" json:"days_back" default:"30" validate:"gte=1,lte=365"`
}

// CorpusRequest reads stored corpus records back.
type CorpusRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
	Limit  int    `query:"limit" json:"limit" default:"200" validate:"gte=1,lte=5000"`
}
