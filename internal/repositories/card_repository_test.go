package repositories

import (
	"testing"

	"bank-management/internal/database"
	"bank-management/internal/idgen"
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestCardRepository(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}

type CardRepositorySuite struct {
	suite.Suite
	db      *database.DB
	repo    CardRepositoryInterface
	account *models.Account
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCardRepository(s.db.DB, idgen.NewSequential())

	s.account = database.CreateTestAccount(s.T(), s.db, "ACC111111111",
		"owner@example.com", decimal.NewFromFloat(1000.00))
}

func (s *CardRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CardRepositorySuite) newCard(cardNumber string) *models.Card {
	return &models.Card{
		AccountID:      s.account.ID,
		CardNumber:     cardNumber,
		CardHolderName: "Test Owner",
		CardType:       models.CardTypeDebit,
		ExpiryDate:     "12/2030",
		CVV:            "123",
		Status:         models.CardStatusActive,
	}
}

func (s *CardRepositorySuite) TestCreate() {
	card := s.newCard("4000111122223333")

	err := s.repo.Create(card)
	s.NoError(err)
	s.NotZero(card.ID)
	s.NotZero(card.IssuedDate)
}

func (s *CardRepositorySuite) TestCreate_DuplicateCardNumber() {
	s.NoError(s.repo.Create(s.newCard("4000111122223333")))

	err := s.repo.Create(s.newCard("4000111122223333"))
	s.Error(err)
}

func (s *CardRepositorySuite) TestGetByID() {
	card := s.newCard("4000111122223333")
	s.NoError(s.repo.Create(card))

	found, err := s.repo.GetByID(card.ID)
	s.NoError(err)
	s.Equal(card.CardNumber, found.CardNumber)

	_, err = s.repo.GetByID(99999)
	s.ErrorIs(err, ErrCardNotFound)
}

func (s *CardRepositorySuite) TestGetByAccountID() {
	s.NoError(s.repo.Create(s.newCard("4000111122223333")))
	s.NoError(s.repo.Create(s.newCard("4000111122224444")))

	other := database.CreateTestAccount(s.T(), s.db, "ACC222222222",
		"other@example.com", decimal.NewFromFloat(100.00))
	otherCard := s.newCard("4000111122225555")
	otherCard.AccountID = other.ID
	s.NoError(s.repo.Create(otherCard))

	cards, err := s.repo.GetByAccountID(s.account.ID)
	s.NoError(err)
	s.Len(cards, 2)
}

func (s *CardRepositorySuite) TestUpdate() {
	card := s.newCard("4000111122223333")
	s.NoError(s.repo.Create(card))

	s.NoError(card.Block("lost card"))
	err := s.repo.Update(card)
	s.NoError(err)

	found, err := s.repo.GetByID(card.ID)
	s.NoError(err)
	s.True(found.IsBlocked)
	s.Equal("lost card", found.BlockReason)
}

func (s *CardRepositorySuite) TestGenerateUniqueCardNumber() {
	number, err := s.repo.GenerateUniqueCardNumber()
	s.NoError(err)
	s.Len(number, 16)
	s.Equal(byte('4'), number[0])
}
