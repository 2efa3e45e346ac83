package models

// CompanyProfile is the input to the AI-analysis pipeline: the onboarding
// attributes of a client engagement, independent of any persisted Company row.
type CompanyProfile struct {
	Name       string   `json:"name"`
	Industry   string   `json:"industry"`
	Revenue    string   `json:"revenue"`
	Employees  string   `json:"employees"`
	Region     string   `json:"region"`
	ERPSystem  string   `json:"erpSystem"`
	PainPoints []string `json:"painPoints"`
	Objectives []string `json:"objectives"`
}

// FromCompany extracts the analysis profile from a persisted company.
func (p *CompanyProfile) FromCompany(c *Company) {
	p.Name = c.ClientName
	p.Industry = c.Industry
	p.Revenue = c.Revenue
	p.Employees = c.Employees
	p.Region = c.Region
	p.ERPSystem = c.ERPSystem
	p.PainPoints = c.PainPoints
	p.Objectives = c.Objectives
}
