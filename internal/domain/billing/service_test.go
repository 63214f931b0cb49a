package billing

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms/hms/internal/platform/store"
)

type mockRepo struct {
	records []*Bill
}

func (m *mockRepo) Load() ([]*Bill, store.Fault) {
	out := make([]*Bill, len(m.records))
	for i, b := range m.records {
		cp := *b
		out[i] = &cp
	}
	return out, store.FaultNone
}

func (m *mockRepo) Save(records []*Bill) store.Fault {
	m.records = records
	return store.FaultNone
}

func newTestService(repo *mockRepo) *Service {
	now := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	return NewService(repo, zerolog.Nop()).WithClock(func() time.Time { return now })
}

func TestAmountFor(t *testing.T) {
	assert.Equal(t, 150.0, AmountFor([]string{"consultation", "blood_test"}))
	// Names are normalized and unknown services skipped.
	assert.Equal(t, 800.0, AmountFor([]string{"MRI Scan", "acupuncture"}))
	assert.Equal(t, 0.0, AmountFor(nil))
}

func TestGenerate(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	bill, err := svc.Generate("P1", []string{"consultation", "x_ray"})
	require.NoError(t, err)
	assert.Equal(t, 250.0, bill.Amount)
	assert.Equal(t, StatusUnpaid, bill.Status)
	assert.Nil(t, bill.PaymentDate)
	assert.Len(t, repo.records, 1)

	_, err = svc.Generate("P1", nil)
	assert.Error(t, err, "empty service list must be rejected")

	_, err = svc.Generate("P1", []string{"acupuncture"})
	assert.Error(t, err, "a bill with no billable services must be rejected")
}

func TestRecordPayment_FullAndPartial(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	bill, err := svc.Generate("P1", []string{"consultation"})
	require.NoError(t, err)

	require.NoError(t, svc.RecordPayment(bill.ID, 40.0))
	got := repo.records[0]
	assert.Equal(t, StatusPartial, got.Status)
	require.NotNil(t, got.PaymentDate)

	require.NoError(t, svc.RecordPayment(bill.ID, 100.0))
	assert.Equal(t, StatusPaid, repo.records[0].Status)
}

func TestRecordPayment_Validation(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	bill, err := svc.Generate("P1", []string{"consultation"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RecordPayment("missing", 10), ErrNotFound)
	assert.Error(t, svc.RecordPayment(bill.ID, 0))
	assert.Error(t, svc.RecordPayment(bill.ID, -5))
	assert.Error(t, svc.RecordPayment(bill.ID, 100.01), "over-payment must be rejected")
}

func TestRecordPayment_PaidBillIsNoOp(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	bill, err := svc.Generate("P1", []string{"consultation"})
	require.NoError(t, err)
	require.NoError(t, svc.RecordPayment(bill.ID, 100.0))

	before := repo.records[0].UpdatedAt
	require.NoError(t, svc.RecordPayment(bill.ID, 100.0))
	assert.Equal(t, before, repo.records[0].UpdatedAt, "paid bill must not be modified")
}

func TestListViews(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a, err := svc.Generate("P1", []string{"consultation"})
	require.NoError(t, err)
	b, err := svc.Generate("P2", []string{"ecg"})
	require.NoError(t, err)
	require.NoError(t, svc.RecordPayment(b.ID, 75.0))

	assert.Len(t, svc.List(""), 2)
	assert.Len(t, svc.List(StatusPaid), 1)

	outstanding := svc.Outstanding()
	require.Len(t, outstanding, 1)
	assert.Equal(t, a.ID, outstanding[0].ID)

	mine := svc.ForPatient("P2")
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)
}
