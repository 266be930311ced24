package service

import "strings"

var categories = []string{
	"Admissions",
	"Courses",
	"Fees",
	"Placements",
	"Campus Life",
	"Faculty",
	"Events",
	"Facilities",
}

var generalSuggestions = []string{
	"What are the admission requirements?",
	"Tell me about the available courses",
	"What is the fee structure?",
	"How is the placement record?",
}

var categorySuggestions = map[string][]string{
	"admissions": {
		"What are the eligibility criteria for admission?",
		"What is the admission process?",
		"When do admissions open?",
		"What documents are required for admission?",
	},
	"courses": {
		"What courses are offered?",
		"What is the duration of each course?",
		"Are there any specializations available?",
		"What is the course curriculum?",
	},
	"fees": {
		"What is the fee structure?",
		"Are there any scholarships available?",
		"What are the payment options?",
		"Is there any financial aid?",
	},
	"placements": {
		"What is the placement record?",
		"Which companies visit for placements?",
		"What is the average package?",
		"Is there placement assistance?",
	},
}

// Categories lists the topic categories offered to clients.
func (s *Service) Categories() []string {
	return append([]string(nil), categories...)
}

// SuggestedQuestions returns starter questions for a category.
func (s *Service) SuggestedQuestions(category string) []string {
	category = strings.TrimSpace(category)
	if category == "" {
		return append([]string(nil), generalSuggestions...)
	}
	if list, ok := categorySuggestions[strings.ToLower(category)]; ok {
		return append([]string(nil), list...)
	}
	return []string{
		"Tell me more about " + category,
		"What facilities are available?",
		"How can I get more information?",
	}
}
