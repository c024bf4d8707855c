package models

// RankedCandidate is a candidate with the relevance assigned by the ranking
// backend. Candidates the backend omitted carry Relevancia 0 and no Razon.
type RankedCandidate struct {
	Candidate
	Relevancia int    `json:"relevancia"`
	Razon      string `json:"razon,omitempty"`
}
