package voucher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/auditlog"
	"github.com/cleared-dev/tally/internal/events"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/storage"
)

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type brokenStore struct{ storage.Store }

func (brokenStore) List(context.Context, storage.Filter) ([]model.Voucher, error) {
	return nil, errors.Join(storage.ErrUnavailable, errors.New("disk on fire"))
}

// failingBatchStore stores nothing and fails every batch.
type failingBatchStore struct{ storage.Store }

func (failingBatchStore) InsertAll(context.Context, []model.Voucher) ([]model.Voucher, error) {
	return nil, errors.Join(storage.ErrUnavailable, errors.New("disk full"))
}

// unscopedStore returns every voucher whatever the filter says.
type unscopedStore struct {
	storage.Store
	vs []model.Voucher
}

func (s unscopedStore) List(context.Context, storage.Filter) ([]model.Voucher, error) {
	return s.vs, nil
}

func newTestService(t *testing.T) (*Service, *recordingPublisher, string) {
	t.Helper()
	dir := t.TempDir()
	pub := &recordingPublisher{}
	svc := NewService(storage.NewCSVStore(dir, nil), pub, auditlog.New(dir), nil)
	return svc, pub, dir
}

func TestService_Add(t *testing.T) {
	svc, pub, dir := newTestService(t)
	ctx := context.Background()

	v, err := svc.Add(ctx, validVoucher())
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", v.ID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.VoucherCreated, pub.events[0].Kind)
	assert.Equal(t, "2025-01-001", pub.events[0].VoucherID)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionVoucherAdd, entries[0].Action)
	assert.Equal(t, "Sales Cash/Sales 100.00", entries[0].Details)
}

func TestService_AddRejectsInvalid(t *testing.T) {
	svc, pub, _ := newTestService(t)

	bad := validVoucher()
	bad.Amount = dec("-1")
	_, err := svc.Add(context.Background(), bad)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Empty(t, pub.events)
}

func TestService_PublishFailureDoesNotFailAdd(t *testing.T) {
	svc, pub, _ := newTestService(t)
	pub.err = errors.New("broker down")

	_, err := svc.Add(context.Background(), validVoucher())
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Len(t, snap.Vouchers, 1)
}

func TestService_AddAllIsAllOrNothing(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	bad := validVoucher()
	bad.DebitLedger = ""
	_, err := svc.AddAll(ctx, []model.Voucher{validVoucher(), bad})
	require.Error(t, err)

	snap, err := svc.Snapshot(ctx, storage.Filter{})
	require.NoError(t, err)
	assert.True(t, snap.Empty())

	saved, err := svc.AddAll(ctx, []model.Voucher{validVoucher(), validVoucher()})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "2025-01-002", saved[1].ID)
}

func TestService_AddAllStoreFailureAddsNothing(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(failingBatchStore{}, pub, nil, nil)

	saved, err := svc.AddAll(context.Background(), []model.Voucher{validVoucher(), validVoucher()})
	require.ErrorIs(t, err, storage.ErrUnavailable)
	assert.Nil(t, saved)
	assert.Empty(t, pub.events, "no events for vouchers that were never stored")
}

func TestService_SnapshotRejectsInvalidStoredRows(t *testing.T) {
	svc, _, dir := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, validVoucher())
	require.NoError(t, err)

	// Hand-edit the month file: same ledger on both sides, negative amount.
	path := filepath.Join(dir, "2025", "01", storage.VoucherFile)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	body = append(body, []byte("2025-01-002,2025-01-20,Sales,Cash,Cash,-50.00,,,,\n")...)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	_, err = svc.Snapshot(ctx, storage.Filter{})
	require.ErrorIs(t, err, storage.ErrInvalidRecord)
	assert.NotErrorIs(t, err, storage.ErrUnavailable)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "2025-01-002", errs[0].VoucherID)
}

func TestService_SnapshotScopesToCompany(t *testing.T) {
	acme := validVoucher()
	acme.Company = "Acme "
	other := validVoucher()
	other.Company = "Other Co"
	svc := NewService(unscopedStore{vs: []model.Voucher{acme, other}}, nil, nil, nil)

	snap, err := svc.Snapshot(context.Background(), storage.Filter{Company: "acme"})
	require.NoError(t, err)
	require.Len(t, snap.Vouchers, 1)
	assert.Equal(t, "Acme ", snap.Vouchers[0].Company)

	snap, err = svc.Snapshot(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Len(t, snap.Vouchers, 2)
}

func TestService_Delete(t *testing.T) {
	svc, pub, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Add(ctx, validVoucher())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, v.ID))

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.VoucherDeleted, pub.events[1].Kind)

	err = svc.Delete(ctx, v.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_SnapshotDistinguishesEmptyFromUnavailable(t *testing.T) {
	svc, _, _ := newTestService(t)

	snap, err := svc.Snapshot(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.True(t, snap.Empty())
	assert.NotNil(t, snap.Vouchers)

	broken := NewService(brokenStore{}, nil, nil, nil)
	_, err = broken.Snapshot(context.Background(), storage.Filter{})
	require.ErrorIs(t, err, storage.ErrUnavailable)
}
