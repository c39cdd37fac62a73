package service

import (
	"fmt"

	"github.com/qoloner/qoloner-api/internal/models"
)

// kaspiDeeplink opens the Kaspi app on the buyer's device.
const kaspiDeeplink = "kaspi://app"

// PaymentService derives manual Kaspi transfer instructions for a product.
// The flow is instructional only: the buyer transfers directly to the
// master's phone number, nothing is persisted and no gateway is called.
type PaymentService struct{}

// NewPaymentService constructs a PaymentService.
func NewPaymentService() *PaymentService {
	return &PaymentService{}
}

// BuildInstruction assembles the payment modal payload from a product
// detail: recipient, Kaspi phone number, amount, and the transfer comment
// identifying the order.
func (s *PaymentService) BuildInstruction(d *models.ProductDetail) *models.PaymentInstruction {
	amountText := FormatTenge(d.Price)

	return &models.PaymentInstruction{
		ProductID:  d.ID,
		Title:      d.Title,
		Recipient:  d.Master.Name,
		Phone:      d.Master.Phone,
		Amount:     d.Price,
		AmountText: amountText,
		Comment:    fmt.Sprintf("Заказ: %s", d.Title),
		Deeplink:   kaspiDeeplink,
		Steps: []string{
			"Скопируйте номер для перевода",
			"Откройте приложение Kaspi",
			"Переводы → На карту или телефон",
			fmt.Sprintf("Вставьте номер и введите сумму %s", amountText),
			fmt.Sprintf("В комментарии укажите: \"Заказ: %s\"", d.Title),
		},
	}
}

// FormatTenge renders an amount with space-grouped thousands and the tenge
// sign, e.g. 40000 -> "40 000 ₸".
func FormatTenge(amount int) string {
	digits := fmt.Sprintf("%d", amount)
	if amount < 0 {
		digits = digits[1:]
	}

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s ₸", sign, grouped)
}
