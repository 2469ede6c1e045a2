package voucher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/auditlog"
	"github.com/cleared-dev/tally/internal/events"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/storage"
)

// Auditor records a change to the books.
type Auditor interface {
	Record(action, voucherID, details string) error
}

// Snapshot is the voucher collection one aggregation pass works over.
type Snapshot struct {
	Vouchers []model.Voucher
	Filter   storage.Filter
	TakenAt  time.Time
}

// Empty reports whether the books held no matching vouchers.
func (s Snapshot) Empty() bool { return len(s.Vouchers) == 0 }

// Service provides business logic for vouchers.
type Service struct {
	store  storage.Store
	pub    events.Publisher
	audit  Auditor
	logger *slog.Logger
}

// NewService creates a voucher Service. pub, audit and logger may be nil.
func NewService(store storage.Store, pub events.Publisher, audit Auditor, logger *slog.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		pub:    pub,
		audit:  audit,
		logger: logger.With("component", "voucher"),
	}
}

// Add validates v, assigns its ID and persists it.
func (s *Service) Add(ctx context.Context, v model.Voucher) (model.Voucher, error) {
	if err := Validate(v).Err(); err != nil {
		return model.Voucher{}, err
	}
	return s.insert(ctx, v)
}

// AddAll validates every voucher, then stores them as one unit: a failure
// leaves the books as they were, so the whole batch can be retried.
func (s *Service) AddAll(ctx context.Context, vs []model.Voucher) ([]model.Voucher, error) {
	var errs Errors
	for _, v := range vs {
		errs = append(errs, Validate(v)...)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return []model.Voucher{}, nil
	}

	saved, err := s.store.InsertAll(ctx, vs)
	if err != nil {
		return nil, fmt.Errorf("saving %d vouchers: %w", len(vs), err)
	}
	for _, v := range saved {
		s.added(ctx, v)
	}
	return saved, nil
}

func (s *Service) insert(ctx context.Context, v model.Voucher) (model.Voucher, error) {
	saved, err := s.store.Insert(ctx, v)
	if err != nil {
		return model.Voucher{}, fmt.Errorf("saving voucher: %w", err)
	}
	s.added(ctx, saved)
	return saved, nil
}

func (s *Service) added(ctx context.Context, v model.Voucher) {
	s.record(auditlog.ActionVoucherAdd, v.ID,
		fmt.Sprintf("%s %s/%s %s", v.Type, v.DebitLedger, v.CreditLedger, v.Amount.StringFixed(2)))
	s.publish(ctx, events.NewEvent(events.VoucherCreated, v))

	s.logger.InfoContext(ctx, "voucher added", "id", v.ID, "type", v.Type, "amount", v.Amount.StringFixed(2))
}

// Delete removes a voucher. Unknown IDs yield storage.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting voucher %s: %w", id, err)
	}

	s.record(auditlog.ActionVoucherDelete, id, "")
	s.publish(ctx, events.NewEvent(events.VoucherDeleted, model.Voucher{ID: id}))

	s.logger.InfoContext(ctx, "voucher deleted", "id", id)
	return nil
}

// Snapshot fetches the vouchers matching f, scoped to f.Company. A store
// failure is returned as an error wrapping storage.ErrUnavailable, and a
// stored row that is not a valid voucher as one wrapping
// storage.ErrInvalidRecord; neither is ever an empty snapshot.
func (s *Service) Snapshot(ctx context.Context, f storage.Filter) (Snapshot, error) {
	vs, err := s.store.List(ctx, f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading vouchers: %w", err)
	}
	// Backends compare company names their own way; the snapshot only ever
	// holds the requested tenant.
	vs = aggregate.ForCompany(vs, f.Company)
	return Snapshot{Vouchers: vs, Filter: f, TakenAt: time.Now()}, nil
}

func (s *Service) record(action, id, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(action, id, details); err != nil {
		s.logger.Warn("audit log write failed", "action", action, "id", id, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.pub.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "event publish failed", "kind", e.Kind, "voucher_id", e.VoucherID, "error", err)
	}
}
