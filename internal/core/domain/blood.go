package domain

type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

// ValidBloodType reports whether bt is one of the eight standard types.
func ValidBloodType(bt BloodType) bool {
	switch bt {
	case BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg, BloodOPos, BloodONeg:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyHigh     Urgency = "high"
	UrgencyUrgent   Urgency = "urgent"
)

// ValidUrgency reports whether u is one of the enumerated urgency levels.
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyStandard, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}
