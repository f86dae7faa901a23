package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
)

func TestBookingRecipientPrefersLinkedAccountEmail(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("GetByID", mock.Anything, "acct-1").
		Return(&entity.Account{ID: "acct-1", Email: "budi@clinic.local"}, nil)

	svc := &AppointmentService{Accounts: accounts}
	p := &entity.Patient{AccountID: "acct-1", Contact: "0812-3456-7890"}

	assert.Equal(t, "budi@clinic.local", svc.bookingRecipient(context.Background(), p))
	accounts.AssertExpectations(t)
}

func TestBookingRecipientSkipsPhoneContact(t *testing.T) {
	svc := &AppointmentService{Accounts: new(MockAccountRepository)}
	p := &entity.Patient{Contact: "0812-3456-7890"}

	assert.Empty(t, svc.bookingRecipient(context.Background(), p))
}

func TestBookingRecipientFallsBackToEmailLookingContact(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("GetByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound)

	svc := &AppointmentService{Accounts: accounts}
	p := &entity.Patient{AccountID: "gone", Contact: "budi@example.com"}

	assert.Equal(t, "budi@example.com", svc.bookingRecipient(context.Background(), p))
}
