package sms

import (
	"sort"
	"strings"
)

// defaultCategoryID is the "Other" bucket assigned when no keyword matches.
const defaultCategoryID = 10

// categoryKeywords maps category ids to the keywords that select them.
// Lower ids win when a keyword appears in more than one list ("gas" matches
// Utilities before Transportation).
var categoryKeywords = map[int][]string{
	1: {"rent", "mortgage", "housing", "apartment", "home"},
	2: {"utility", "electric", "water", "gas", "power", "energy", "internet", "wifi", "broadband"},
	3: {"car", "auto", "vehicle", "transportation", "fuel", "gas", "petrol", "diesel", "parking"},
	4: {"grocery", "food", "supermarket", "market"},
	5: {"entertainment", "movie", "theater", "game", "subscription"},
	6: {"restaurant", "dining", "cafe", "food delivery"},
	7: {"health", "medical", "doctor", "hospital", "clinic", "pharmacy", "prescription"},
	8: {"insurance", "coverage", "policy", "protection", "premium"},
	9: {"subscription", "membership", "streaming", "netflix", "spotify", "amazon prime"},
}

// CategorizeByKeywords picks a category id for a bill from its title,
// merchant and description text. Returns the "Other" category when nothing
// matches.
func CategorizeByKeywords(title, merchant, description string) int {
	text := strings.ToLower(title + " " + merchant + " " + description)

	ids := make([]int, 0, len(categoryKeywords))
	for id := range categoryKeywords {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		for _, keyword := range categoryKeywords[id] {
			if strings.Contains(text, keyword) {
				return id
			}
		}
	}
	return defaultCategoryID
}
