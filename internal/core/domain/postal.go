package domain

import "fmt"

type PostOffice struct {
	Name       string `json:"name"`
	BranchType string `json:"branch_type"`
	Division   string `json:"division"`
	District   string `json:"district"`
	State      string `json:"state"`
	Pincode    string `json:"pincode"`
}

// Address renders the single-line form shown in the nearby post office list.
func (o PostOffice) Address() string {
	return fmt.Sprintf("%s (%s Branch), %s, %s, %s - %s",
		o.Name, o.BranchType, o.Division, o.District, o.State, o.Pincode)
}

type PostalStatus string

const (
	PostalFound          PostalStatus = "found"
	PostalNoResults      PostalStatus = "no_results"
	PostalInvalidPincode PostalStatus = "invalid_pincode"
	PostalFailed         PostalStatus = "failed"
)

type PostalFailure string

const (
	PostalFailureTimeout     PostalFailure = "timeout"
	PostalFailureUnavailable PostalFailure = "service unavailable"
	PostalFailureMalformed   PostalFailure = "malformed response"
	PostalFailureRejected    PostalFailure = "request rejected"
)

// PostalLookup is the outcome of a pincode lookup. Failure is only set when
// Status is PostalFailed.
type PostalLookup struct {
	Status  PostalStatus
	Offices []PostOffice
	Failure PostalFailure
}

const (
	InvalidPincodeNotice = "⚠️ Invalid or missing pincode."
	NoPostOfficesNotice  = "⚠️ No post offices found for this pincode."
)

// Lines renders the lookup as the list returned to callers: one address per
// office, or a single placeholder line.
func (l PostalLookup) Lines() []string {
	switch l.Status {
	case PostalFound:
		lines := make([]string, 0, len(l.Offices))
		for _, office := range l.Offices {
			lines = append(lines, office.Address())
		}
		return lines
	case PostalNoResults:
		return []string{NoPostOfficesNotice}
	case PostalInvalidPincode:
		return []string{InvalidPincodeNotice}
	default:
		failure := l.Failure
		if failure == "" {
			failure = PostalFailureUnavailable
		}
		return []string{"❌ Error fetching post office data: " + string(failure)}
	}
}

// ValidPincode reports whether v is exactly six ASCII digits.
func ValidPincode(v string) bool {
	if len(v) != 6 {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}
