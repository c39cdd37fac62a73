package models

// PaymentInstruction is the manual Kaspi transfer payload rendered by the
// payment modal. It is derived from a product detail and never persisted.
type PaymentInstruction struct {
	ProductID  int      `json:"product_id"`
	Title      string   `json:"title"`
	Recipient  string   `json:"recipient"`
	Phone      string   `json:"phone"`
	Amount     int      `json:"amount"`
	AmountText string   `json:"amount_text"`
	Comment    string   `json:"comment"`
	Deeplink   string   `json:"deeplink"`
	Steps      []string `json:"steps"`
}
