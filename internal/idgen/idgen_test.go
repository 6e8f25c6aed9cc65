package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bank-management/internal/models"
)

func TestRandomGenerator_Formats(t *testing.T) {
	gen := New()

	t.Run("account number", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			assert.True(t, models.ValidateAccountNumber(gen.AccountNumber()))
		}
	})

	t.Run("transaction id", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			assert.True(t, models.ValidateTransactionID(gen.TransactionID()))
		}
	})

	t.Run("card number is 16 digits", func(t *testing.T) {
		number := gen.CardNumber()
		assert.Len(t, number, 16)
		for _, char := range number {
			assert.True(t, char >= '0' && char <= '9')
		}
	})

	t.Run("cvv is 3 digits", func(t *testing.T) {
		assert.Len(t, gen.CVV(), 3)
	})

	t.Run("card expiry parses as MM/YYYY", func(t *testing.T) {
		_, err := models.ParseExpiryDate(gen.CardExpiry())
		assert.NoError(t, err)
	})

	t.Run("loan number", func(t *testing.T) {
		number := gen.LoanNumber()
		assert.Len(t, number, 12)
		assert.Equal(t, "LN", number[:2])
	})
}

func TestSequentialGenerator_Deterministic(t *testing.T) {
	gen := NewSequential()

	assert.Equal(t, "ACC000000001", gen.AccountNumber())
	assert.Equal(t, "ACC000000002", gen.AccountNumber())
	assert.Equal(t, "TXN000000000003", gen.TransactionID())
	assert.Equal(t, "LN0000000004", gen.LoanNumber())

	other := NewSequential()
	assert.Equal(t, "ACC000000001", other.AccountNumber())
}
