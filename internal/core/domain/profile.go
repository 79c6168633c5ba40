package domain

type Gender int

const (
	GenderUnrecognized Gender = iota
	GenderFemale
	GenderMale
	GenderOther
)

// ParseGender expects an already trimmed, lower-cased value.
func ParseGender(v string) Gender {
	switch v {
	case "female":
		return GenderFemale
	case "male":
		return GenderMale
	case "other":
		return GenderOther
	default:
		return GenderUnrecognized
	}
}

type Occupation int

const (
	OccupationUnrecognized Occupation = iota
	OccupationFarmer
	OccupationStudent
	OccupationBusiness
	OccupationRetired
	OccupationGovernmentEmployee
	OccupationHousewife
	OccupationUnemployed
	OccupationPrivateEmployee
)

// ParseOccupation expects an already trimmed, lower-cased value.
func ParseOccupation(v string) Occupation {
	switch v {
	case "farmer":
		return OccupationFarmer
	case "student":
		return OccupationStudent
	case "business":
		return OccupationBusiness
	case "retired":
		return OccupationRetired
	case "government employee":
		return OccupationGovernmentEmployee
	case "housewife":
		return OccupationHousewife
	case "unemployed":
		return OccupationUnemployed
	case "private employee":
		return OccupationPrivateEmployee
	default:
		return OccupationUnrecognized
	}
}

// ProfileInput is the raw, untrimmed request payload.
type ProfileInput struct {
	Name       string
	Age        int
	Gender     string
	Occupation string
	District   string
	Pincode    string
}

// Profile is a normalized ProfileInput. Gender and Occupation drive the rules;
// the display fields are echoed back to the caller.
type Profile struct {
	Name       string
	Age        int
	Gender     Gender
	Occupation Occupation
	District   string
	Pincode    string

	GenderDisplay     string
	OccupationDisplay string
}

type ProfileEcho struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Occupation string `json:"occupation"`
	District   string `json:"district"`
	Pincode    string `json:"pincode"`
}

func (p Profile) Echo() ProfileEcho {
	return ProfileEcho{
		Name:       p.Name,
		Age:        p.Age,
		Gender:     p.GenderDisplay,
		Occupation: p.OccupationDisplay,
		District:   p.District,
		Pincode:    p.Pincode,
	}
}

type ProfileReport struct {
	User               ProfileEcho  `json:"user"`
	RecommendedSchemes []Scheme     `json:"recommended_schemes"`
	NearbyPostOffices  []string     `json:"nearby_post_offices"`
	PostOfficeLookup   PostalStatus `json:"post_office_lookup"`
}
