package models

// Word is a vocabulary item served by the upstream catalog
type Word struct {
	ID           int64   `json:"id"`
	Korean       string  `json:"korean"`
	Romanization string  `json:"romanization"`
	English      string  `json:"english"`
	Example      string  `json:"example,omitempty"`
	TopikLevel   int     `json:"topik_level,omitempty"`
	Frequency    int     `json:"frequency,omitempty"`
}

// WordSearchResult pairs a word with its semantic similarity to a query
type WordSearchResult struct {
	Word       Word    `json:"word"`
	Similarity float64 `json:"similarity"`
}

// PracticeContent is AI-generated practice material for a word
type PracticeContent struct {
	WordID       int64    `json:"word_id"`
	PracticeType string   `json:"practice_type"`
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices,omitempty"`
	Answer       string   `json:"answer,omitempty"`
}
