package m_business

// Data is the stored JSON form of the business configuration.
// A nil States (field missing or null) means "use the defaults"; an empty
// array means no states are configured.
type Data struct {
	Name       string      `json:"name"`
	Logo       *string     `json:"logo"`
	FooterNote string      `json:"footerNote"`
	States     []StateData `json:"states"`
}

// StateData is one workflow state.
type StateData struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
