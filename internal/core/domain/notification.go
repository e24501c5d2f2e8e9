package domain

type TargetType string

const (
	TargetAll           TargetType = "all"
	TargetDonors        TargetType = "donors"
	TargetSpecificUsers TargetType = "specific_users"
)

// ValidTargetType reports whether t is a recognized audience selector.
func ValidTargetType(t TargetType) bool {
	switch t {
	case TargetAll, TargetDonors, TargetSpecificUsers:
		return true
	}
	return false
}
