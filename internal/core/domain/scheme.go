package domain

// Scheme is a display label for a savings or insurance programme. The emoji
// prefix is the category cue shown by the frontend.
type Scheme string

// District-level schemes.
const (
	SchemeSukanyaSamriddhi     Scheme = "👧 Sukanya Samriddhi Account (SSA)"
	SchemeSeniorCitizenSavings Scheme = "👴 Senior Citizen Savings Scheme (SCSS)"
	SchemeRuralPostalLife      Scheme = "🛡️ Rural Postal Life Insurance (RPLI)"
	SchemeKisanVikasPatra      Scheme = "🌾 Kisan Vikas Patra (KVP)"
	SchemeLowIncomeSavings     Scheme = "📆 Recurring Deposit (RD), 🌳 Public Provident Fund (PPF), 📜 National Savings Certificate (NSC)"
	SchemeMahilaSammanDistrict Scheme = "👩 Mahila Samman Savings Certificate"
)

// Profile-level schemes.
const (
	SchemePMKisan                 Scheme = "🚜 PM-KISAN Yojana"
	SchemeFarmerCredit            Scheme = "💳 Farmer Credit Scheme"
	SchemeSukanyaForGirls         Scheme = "📚 Sukanya Samriddhi (for girls)"
	SchemeNationalScholarship     Scheme = "🎓 National Scholarship Scheme"
	SchemeMSMELoan                Scheme = "🏢 MSME Loan"
	SchemePension                 Scheme = "👴 Pension Scheme"
	SchemePostalLifeInsurance     Scheme = "🏛️ Postal Life Insurance (PLI)"
	SchemeGeneralProvident        Scheme = "🪙 General Provident Fund (GPF)"
	SchemeMahilaSammanHome        Scheme = "👩‍🍳 Mahila Samman"
	SchemeJanDhan                 Scheme = "🆘 PM Jan Dhan Yojana"
	SchemeTermInsurance           Scheme = "💼 Term Insurance"
	SchemeMahilaSammanCertificate Scheme = "👩‍👧‍👦 Mahila Samman Savings Certificate"
)
