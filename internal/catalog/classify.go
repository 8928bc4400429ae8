package catalog

import (
	"strings"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/normalize"
)

type classRule struct {
	category domain.CarCategory
	match    func(key string) bool
}

func contains(token string) func(string) bool {
	return func(key string) bool { return strings.Contains(key, token) }
}

// classRules are evaluated in order and the first match wins. The st rule covers the
// Lamborghini Super Trofeo naming variants.
var classRules = []classRule{
	{domain.CategoryGT3, contains("gt3")},
	{domain.CategoryGT4, contains("gt4")},
	{domain.CategoryGT2, contains("gt2")},
	{domain.CategoryCup, contains("cup")},
	{domain.CategoryChallenge, contains("challenge")},
	{domain.CategoryST, func(key string) bool {
		return strings.Contains(key, " st ") ||
			strings.HasSuffix(key, " st") ||
			strings.Contains(key, " super trofeo")
	}},
}

// Classify maps a car name or key to its category. It always returns one of
// domain.CarCategories, falling back to "other".
func Classify(car string) domain.CarCategory {
	key := normalize.Name(car)
	for _, rule := range classRules {
		if rule.match(key) {
			return rule.category
		}
	}
	return domain.CategoryOther
}
