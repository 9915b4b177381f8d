package recipient

import (
	"context"
	"testing"

	"bloodbank/internal/db/dbtest"
	hospitaldomain "bloodbank/internal/domain/hospital"
	recipientdomain "bloodbank/internal/domain/recipient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipient(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.Open(t)
	repo := NewPostgres(gormDB)

	hospital := hospitaldomain.Hospital{Name: "General"}
	require.NoError(t, gormDB.Create(&hospital).Error)

	recipient := recipientdomain.Recipient{Name: "Rae", BloodType: "O-", HospitalID: &hospital.ID}
	require.NoError(t, repo.CreateRecipient(ctx, &recipient))

	found, err := repo.GetRecipientByID(ctx, recipient.ID)
	require.NoError(t, err)
	require.NotNil(t, found.HospitalID)
	assert.Equal(t, hospital.ID, *found.HospitalID)

	missing := int64(999)
	orphan := recipientdomain.Recipient{Name: "Sam", BloodType: "O-", HospitalID: &missing}
	assert.ErrorIs(t, repo.CreateRecipient(ctx, &orphan), recipientdomain.ErrUnknownHospital)

	list, err := repo.ListRecipients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetRecipientByID(ctx, 999)
	assert.ErrorIs(t, err, recipientdomain.ErrRecipientNotFound)
}
