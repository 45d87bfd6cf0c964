package send_blast

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokita/booking-service/internal/domain"
	studioRepo "github.com/studiokita/booking-service/internal/infra/storage/studio"
	"github.com/studiokita/booking-service/internal/integrations/whatsapp"
)

type fakeBookingRepo struct {
	phones []string
}

func (f *fakeBookingRepo) GetCustomerPhonesByStudioID(_ context.Context, _ int64) ([]string, error) {
	return f.phones, nil
}

type fakeStudioRepo struct {
	studio *domain.Studio
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id int64) (*domain.Studio, error) {
	if f.studio == nil || f.studio.ID != id {
		return nil, studioRepo.ErrStudioNotFound
	}
	return f.studio, nil
}

type fakeSender struct {
	sent    []string
	failFor map[string]error
}

func (f *fakeSender) SendMessage(_ context.Context, phone, _ string) error {
	if err, ok := f.failFor[phone]; ok {
		return err
	}
	f.sent = append(f.sent, phone)
	return nil
}

type countingLimiter struct {
	waits int
}

func (l *countingLimiter) Wait(_ context.Context) error {
	l.waits++
	return nil
}

type fakeMetrics struct {
	results map[string]int
}

func (f *fakeMetrics) IncBlastMessage(result string) {
	if f.results == nil {
		f.results = map[string]int{}
	}
	f.results[result]++
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const staffUserID = int64(10)

func fixture(tier domain.PackageTier, phones []string) (*UseCase, *fakeSender, *countingLimiter, *fakeMetrics) {
	bRepo := &fakeBookingRepo{phones: phones}
	sRepo := &fakeStudioRepo{studio: &domain.Studio{
		ID:       5,
		Name:     "Studio Lima",
		Tier:     tier,
		StaffIDs: []int64{staffUserID},
	}}
	sender := &fakeSender{failFor: map[string]error{}}
	limiter := &countingLimiter{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(bRepo, sRepo, sender, limiter, metrics, noopLogger{})
	return uc, sender, limiter, metrics
}

func TestSendBlast(t *testing.T) {
	uc, sender, limiter, metrics := fixture(domain.TierGold, []string{"60123456789", "60198765432"})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   staffUserID,
		StudioID: 5,
		Message:  "September promo: 20% off weekday sessions",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Recipients)
	assert.Equal(t, 2, resp.Sent)
	assert.Zero(t, resp.Failed)
	assert.Len(t, sender.sent, 2)
	assert.Equal(t, 2, limiter.waits, "every delivery waits on the limiter")
	assert.Equal(t, 2, metrics.results["sent"])
}

func TestSendBlast_PartialFailure(t *testing.T) {
	uc, sender, _, metrics := fixture(domain.TierGold, []string{"60111", "60222", "60333"})
	sender.failFor["60222"] = errors.New("recipient rejected")

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   staffUserID,
		StudioID: 5,
		Message:  "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 1, metrics.results["failed"])
}

func TestSendBlast_SessionDisconnectedAborts(t *testing.T) {
	uc, sender, _, _ := fixture(domain.TierGold, []string{"60111", "60222", "60333"})
	sender.failFor["60222"] = whatsapp.ErrNotConnected

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   staffUserID,
		StudioID: 5,
		Message:  "hello",
	})
	assert.ErrorIs(t, err, ErrWhatsAppNotConnected)
	assert.Equal(t, []string{"60111"}, sender.sent, "delivery stops at the disconnect")
}

func TestSendBlast_TierGate(t *testing.T) {
	uc, sender, _, _ := fixture(domain.TierSilver, []string{"60111"})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   staffUserID,
		StudioID: 5,
		Message:  "hello",
	})
	assert.ErrorIs(t, err, ErrFeatureNotAllowed)
	assert.Empty(t, sender.sent)
}

func TestSendBlast_AccessDenied(t *testing.T) {
	uc, _, _, _ := fixture(domain.TierGold, []string{"60111"})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   99,
		StudioID: 5,
		Message:  "hello",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSendBlast_NoRecipients(t *testing.T) {
	uc, _, _, _ := fixture(domain.TierGold, nil)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   staffUserID,
		StudioID: 5,
		Message:  "hello",
	})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestSendBlast_Validation(t *testing.T) {
	uc, _, _, _ := fixture(domain.TierGold, []string{"60111"})

	cases := []struct {
		name string
		req  Request
	}{
		{"empty message", Request{UserID: staffUserID, StudioID: 5, Message: "   "}},
		{"message too long", Request{UserID: staffUserID, StudioID: 5, Message: strings.Repeat("a", domain.MaxBlastMessageLength+1)}},
		{"missing studio", Request{UserID: staffUserID, Message: "hello"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
