package models

// SeedLeads returns the fixed demo lead list used at startup and on reset.
// Each call returns fresh records.
func SeedLeads() []*Lead {
	return []*Lead{
		NewLead("L-101", "Vizag Pharma", "CISO", "Visakhapatnam", 1200, "150"),
		NewLead("L-102", "Hyderabad FinTech", "CTO", "Hyderabad", 3500, "400"),
		NewLead("L-103", "Bengaluru CloudCo", "VP Engineering", "Bengaluru", 800, "200"),
		NewLead("L-104", "Chennai Logistics", "IT Director", "Chennai", 600, "100"),
	}
}
