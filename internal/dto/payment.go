package dto

// CreateInvoiceRequest is the body of POST /payment/create-invoice.
// UserID comes from the client session with the external identity provider.
type CreateInvoiceRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PlanID      string  `json:"planId" validate:"required,is-plan-id"`
	Description string  `json:"description" validate:"max=256"`
	UserID      string  `json:"userId"`
}

type CreateInvoiceResponse struct {
	PaymentID string  `json:"paymentId"`
	Invoice   string  `json:"invoice"`
	Sats      int64   `json:"sats"`
	Amount    float64 `json:"amount"`
}

// PaymentStatusResponse is always returned with HTTP 200. For an unknown
// paymentId (for example after a restart cleared the in-memory ledger) the
// status degrades to "pending" with null plan and amount so polling clients
// never have to treat a forgotten record as fatal.
type PaymentStatusResponse struct {
	PaymentID string   `json:"paymentId"`
	Status    string   `json:"status"`
	PlanID    *string  `json:"planId"`
	Amount    *float64 `json:"amount"`
}
