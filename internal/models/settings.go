package models

// Settings mirrors the restaurant settings blob the original client kept in
// browser local storage. The stored shape is not versioned.
type Settings struct {
	Company  CompanySettings  `json:"company"`
	Payments PaymentSettings  `json:"payments"`
	Location LocationSettings `json:"location"`
}

// CompanySettings holds the business identity fields.
type CompanySettings struct {
	Name  string `json:"name"`
	TaxID string `json:"taxId,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// PaymentSettings flags the accepted payment methods.
type PaymentSettings struct {
	Cash         bool   `json:"cash"`
	Card         bool   `json:"card"`
	BankTransfer bool   `json:"bankTransfer"`
	Alias        string `json:"alias,omitempty"`
}

// LocationSettings holds the venue address.
type LocationSettings struct {
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
}
