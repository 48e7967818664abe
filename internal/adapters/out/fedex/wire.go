package fedex

import "encoding/json"

// Request and response shapes for the carrier's Rate API v1.
// Docs: https://developer.fedex.com/api/en-us/catalog/rate/v1/docs.html

type accountNumber struct {
	Value string `json:"value"`
}

type wireAddress struct {
	PostalCode          string `json:"postalCode"`
	CountryCode         string `json:"countryCode"`
	City                string `json:"city,omitempty"`
	StateOrProvinceCode string `json:"stateOrProvinceCode"`
	Residential         bool   `json:"residential"`
}

type wireContact struct {
	PersonName  string `json:"personName"`
	PhoneNumber string `json:"phoneNumber"`
	CompanyName string `json:"companyName,omitempty"`
}

type wireParty struct {
	Contact wireContact `json:"contact"`
	Address wireAddress `json:"address"`
}

type wireWeight struct {
	Units string  `json:"units"`
	Value float64 `json:"value"`
}

type wireDimensions struct {
	Length int    `json:"length"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Units  string `json:"units"`
}

type wireMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type packageLineItem struct {
	Weight     wireWeight     `json:"weight"`
	Dimensions wireDimensions `json:"dimensions"`
}

type responsibleParty struct {
	AccountNumber accountNumber `json:"accountNumber"`
	Address       struct {
		CountryCode string `json:"countryCode"`
	} `json:"address"`
}

type payment struct {
	PaymentType string `json:"paymentType"`
	Payor       struct {
		ResponsibleParty responsibleParty `json:"responsibleParty"`
	} `json:"payor"`
}

type commodity struct {
	Description   string     `json:"description"`
	Quantity      int        `json:"quantity"`
	QuantityUnits string     `json:"quantityUnits"`
	Weight        wireWeight `json:"weight"`
	CustomsValue  wireMoney  `json:"customsValue"`
}

type customsClearanceDetail struct {
	DutiesPayment payment     `json:"dutiesPayment"`
	Commodities   []commodity `json:"commodities"`
}

type requestedShipment struct {
	Shipper                   wireParty              `json:"shipper"`
	Recipient                 wireParty              `json:"recipient"`
	PickupType                string                 `json:"pickupType"`
	ServiceType               string                 `json:"serviceType"`
	RateRequestType           []string               `json:"rateRequestType"`
	ReturnTransitAndCommit    bool                   `json:"returnTransitAndCommit"`
	ShippingChargesPayment    payment                `json:"shippingChargesPayment"`
	CustomsClearanceDetail    customsClearanceDetail `json:"customsClearanceDetail"`
	RequestedPackageLineItems []packageLineItem      `json:"requestedPackageLineItems"`
	ShipDateStamp             string                 `json:"shipDateStamp"`
	PackagingType             string                 `json:"packagingType"`
	PreferredCurrency         string                 `json:"preferredCurrency"`
}

type rateRequest struct {
	AccountNumber     accountNumber     `json:"accountNumber"`
	RequestedShipment requestedShipment `json:"requestedShipment"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type apiError struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}

type ratedShipmentDetail struct {
	RateType       string      `json:"rateType"`
	TotalNetCharge json.Number `json:"totalNetCharge"`
	Currency       string      `json:"currency"`
}

type commitDetail struct {
	DateDetail struct {
		DayFormat string `json:"dayFormat"`
	} `json:"dateDetail"`
	TimeDetail struct {
		TimeFormat string `json:"timeFormat"`
	} `json:"timeDetail"`
}

type operationalDetail struct {
	TransitTime string `json:"transitTime"`
}

type rateReplyDetail struct {
	ServiceType          string                `json:"serviceType"`
	ServiceName          string                `json:"serviceName"`
	RatedShipmentDetails []ratedShipmentDetail `json:"ratedShipmentDetails"`
	Commit               *commitDetail         `json:"commit"`
	OperationalDetail    *operationalDetail    `json:"operationalDetail"`
}

type rateResponse struct {
	Output struct {
		RateReplyDetails []rateReplyDetail `json:"rateReplyDetails"`
	} `json:"output"`
}
