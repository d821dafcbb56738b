package models

// SponsorCompany is one row of the sponsor database. Loaded once at startup
// and never mutated afterwards.
type SponsorCompany struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Niches       string `json:"niches"`
	Description  string `json:"description"`
	IdealCreator string `json:"ideal_creator"`
	Audience     string `json:"audience"`
	PainPoint    string `json:"pain_point"`
	WhySponsor   string `json:"why_sponsor"`
	PricingRange string `json:"pricing_range"`
	Website      string `json:"website"`
	Funding      string `json:"funding"`
	Region       string `json:"region"`
}
