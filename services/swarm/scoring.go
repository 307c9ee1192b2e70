package swarm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fallback sub-scores for attributes missing from the lookup tables
const (
	DefaultRoleScore     = 60
	DefaultLocationScore = 65
)

// Weights are expressed in percent and sum to 100
const (
	roleWeight     = 30
	locationWeight = 30
	sizeWeight     = 20
	budgetWeight   = 20
)

var roleScores = map[string]int{
	"CISO":             100,
	"CTO":              95,
	"VP Engineering":   85,
	"IT Director":      80,
	"Security Manager": 70,
}

var locationScores = map[string]int{
	"Hyderabad":      100,
	"Bengaluru":      95,
	"Visakhapatnam":  88,
	"Chennai":        85,
	"Vijayawada":     78,
	"Andhra Pradesh": 72,
}

// ScoreCard holds the sub-scores and the weighted ICP score of a lead
type ScoreCard struct {
	Role     int
	Location int
	Size     int
	Budget   int
	ICP      int
}

// Breakdown renders the pipe-delimited trace stored on the lead
func (s ScoreCard) Breakdown() string {
	return fmt.Sprintf("Role:%d | Loc:%d | Emp:%d | Budget:%d -> ICP:%d",
		s.Role, s.Location, s.Size, s.Budget, s.ICP)
}

// RoleScore looks up the seniority score of a role
func RoleScore(role string) int {
	if s, ok := roleScores[role]; ok {
		return s
	}
	return DefaultRoleScore
}

// LocationScore looks up the market score of a location
func LocationScore(location string) int {
	if s, ok := locationScores[location]; ok {
		return s
	}
	return DefaultLocationScore
}

// SizeScore tiers a company by employee count
func SizeScore(employees int) int {
	switch {
	case employees >= 2000:
		return 100
	case employees >= 1000:
		return 85
	case employees >= 500:
		return 70
	default:
		return 55
	}
}

// BudgetScore tiers a budget given in lakhs
func BudgetScore(budget int) int {
	switch {
	case budget >= 400:
		return 100
	case budget >= 200:
		return 85
	case budget >= 100:
		return 70
	default:
		return 55
	}
}

// ParseBudget keeps every digit of a currency-formatted string, so
// "₹1,50" and "150L" both read as 150. A string without digits is 0.
func ParseBudget(budget string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, budget)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// out of range
		return math.MaxInt32
	}
	return n
}

// Score computes the ICP score card. The weighted sum is done in integer
// hundredths and rounded half up, so 77.5 becomes 78 on every platform.
func Score(role, location string, employees int, budget string) ScoreCard {
	card := ScoreCard{
		Role:     RoleScore(role),
		Location: LocationScore(location),
		Size:     SizeScore(employees),
		Budget:   BudgetScore(ParseBudget(budget)),
	}
	total := roleWeight*card.Role + locationWeight*card.Location + sizeWeight*card.Size + budgetWeight*card.Budget
	card.ICP = (total + 50) / 100
	return card
}
