package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() Card {
	future := time.Now().AddDate(2, 0, 0)
	return Card{
		AccountID:      1,
		CardNumber:     "4532123456789012",
		CardHolderName: "Jane Doe",
		CardType:       CardTypeDebit,
		ExpiryDate:     future.Format("01/2006"),
		CVV:            "123",
	}
}

func TestCard_Validate(t *testing.T) {
	t.Run("valid card", func(t *testing.T) {
		card := validCard()
		require.NoError(t, card.Validate())
	})

	t.Run("invalid card type", func(t *testing.T) {
		card := validCard()
		card.CardType = "virtual"
		assert.ErrorIs(t, card.Validate(), ErrInvalidCardType)
	})

	t.Run("malformed expiry date", func(t *testing.T) {
		card := validCard()
		card.ExpiryDate = "2026-01"
		err := card.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MM/YYYY")
	})

	t.Run("missing holder name", func(t *testing.T) {
		card := validCard()
		card.CardHolderName = ""
		err := card.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "card holder name is required")
	})
}

func TestCard_IsExpired(t *testing.T) {
	t.Run("future expiry", func(t *testing.T) {
		card := validCard()
		assert.False(t, card.IsExpired())
	})

	t.Run("past expiry", func(t *testing.T) {
		card := validCard()
		card.ExpiryDate = "01/2020"
		assert.True(t, card.IsExpired())
	})

	t.Run("current month is still usable", func(t *testing.T) {
		card := validCard()
		now := time.Now()
		card.ExpiryDate = fmt.Sprintf("%02d/%d", now.Month(), now.Year())
		assert.False(t, card.IsExpired())
	})
}

func TestCard_BlockUnblock(t *testing.T) {
	card := validCard()
	card.Status = CardStatusActive

	require.NoError(t, card.Block("reported stolen"))
	assert.True(t, card.IsBlocked)
	assert.NotNil(t, card.BlockedDate)
	assert.Equal(t, "reported stolen", card.BlockReason)
	assert.False(t, card.CanUse())

	assert.ErrorIs(t, card.Block("again"), ErrCardBlocked)

	require.NoError(t, card.Unblock())
	assert.False(t, card.IsBlocked)
	assert.Nil(t, card.BlockedDate)
	assert.Empty(t, card.BlockReason)
	assert.True(t, card.CanUse())

	assert.ErrorIs(t, card.Unblock(), ErrCardNotBlocked)
}

func TestCard_CanUse(t *testing.T) {
	t.Run("active unblocked card", func(t *testing.T) {
		card := validCard()
		card.Status = CardStatusActive
		assert.True(t, card.CanUse())
	})

	t.Run("inactive card", func(t *testing.T) {
		card := validCard()
		card.Status = CardStatusInactive
		assert.False(t, card.CanUse())
	})

	t.Run("expired card", func(t *testing.T) {
		card := validCard()
		card.Status = CardStatusActive
		card.ExpiryDate = "01/2020"
		assert.False(t, card.CanUse())
	})
}

func TestCard_BeforeCreate(t *testing.T) {
	card := validCard()
	card.CreditLimit = decimal.NewFromFloat(5000)

	err := card.BeforeCreate(nil)
	require.NoError(t, err)

	assert.Equal(t, CardStatusActive, card.Status)
	assert.NotZero(t, card.IssuedDate)
	assert.NotZero(t, card.CreatedAt)
}
