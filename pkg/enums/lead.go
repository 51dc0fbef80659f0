package enums

import "fmt"

// LeadType classifies how a lead entered the pipeline.
type LeadType string

const (
	LeadTypeReferral LeadType = "referral"
	LeadTypeProspect LeadType = "prospect"
	LeadTypeClient   LeadType = "client"
	LeadTypePartner  LeadType = "partner"
)

var validLeadTypes = []LeadType{
	LeadTypeReferral,
	LeadTypeProspect,
	LeadTypeClient,
	LeadTypePartner,
}

func (t LeadType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known LeadType.
func (t LeadType) IsValid() bool {
	for _, candidate := range validLeadTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLeadType converts raw input into a LeadType.
func ParseLeadType(value string) (LeadType, error) {
	for _, candidate := range validLeadTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead type %q", value)
}

// LeadStatus tracks a lead's position in the sales pipeline.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusContacted  LeadStatus = "contacted"
	LeadStatusQualified  LeadStatus = "qualified"
	LeadStatusClosedWon  LeadStatus = "closed_won"
	LeadStatusClosedLost LeadStatus = "closed_lost"
)

var validLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusClosedWon,
	LeadStatusClosedLost,
}

func (s LeadStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LeadStatus.
func (s LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
