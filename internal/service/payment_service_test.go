package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoloner/qoloner-api/internal/models"
)

func TestPaymentService_BuildInstruction(t *testing.T) {
	detail := &models.ProductDetail{
		Product: models.Product{ID: 5, Title: "Ваза из глины", Price: 40000},
		Master: models.MasterProfile{
			Name:  "Айгерим",
			Phone: "+7 777 123 45 67",
		},
	}

	got := NewPaymentService().BuildInstruction(detail)

	assert.Equal(t, 5, got.ProductID)
	assert.Equal(t, "Ваза из глины", got.Title)
	assert.Equal(t, "Айгерим", got.Recipient)
	assert.Equal(t, "+7 777 123 45 67", got.Phone)
	assert.Equal(t, 40000, got.Amount)
	assert.Equal(t, "40 000 ₸", got.AmountText)
	assert.Equal(t, "Заказ: Ваза из глины", got.Comment)
	assert.Equal(t, "kaspi://app", got.Deeplink)

	require.Len(t, got.Steps, 5)
	assert.Equal(t, "Скопируйте номер для перевода", got.Steps[0])
	assert.Equal(t, "Откройте приложение Kaspi", got.Steps[1])
	assert.Contains(t, got.Steps[3], "40 000 ₸")
	assert.Contains(t, got.Steps[4], `"Заказ: Ваза из глины"`)
}

func TestFormatTenge(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "0 ₸"},
		{500, "500 ₸"},
		{2500, "2 500 ₸"},
		{40000, "40 000 ₸"},
		{50000, "50 000 ₸"},
		{1234567, "1 234 567 ₸"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTenge(tc.amount), "amount %d", tc.amount)
	}
}
