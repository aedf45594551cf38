//go:build unit || e2e

// Package fakestore is an in-memory shared.Store with the same conditional
// semantics as the document store backends. Single operations are atomic;
// sequences of operations are not, so concurrent settlements interleave the
// way they do against a real store.
package fakestore

import (
	"context"
	"sync"
	"time"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/domain/settlement"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/usecase/shared"

	"github.com/google/uuid"
)

// Operation names accepted by FailNext.
const (
	OpClassFind          = "classes.find"
	OpSelectionFind      = "selections.find"
	OpSelectionDelete    = "selections.delete"
	OpPaymentAppend      = "payments.append"
	OpEnrollmentAppend   = "enrollments.append"
	OpSettlementFind     = "settlements.find"
	OpSettlementClaim    = "settlements.claim"
	OpSettlementReclaim  = "settlements.reclaim"
	OpSettlementSave     = "settlements.save"
	OpSettlementComplete = "settlements.complete"
	OpSettlementRelease  = "settlements.release"
	OpSettlementExpire   = "settlements.expire"
	OpSeatReserve        = "seats.reserve"
	OpSeatRelease        = "seats.release"
)

type classRow struct {
	spec      class.Spec
	status    class.Status
	holds     map[payment.TransactionID]bool
	createdAt time.Time
	updatedAt time.Time
}

type Store struct {
	mu          sync.Mutex
	classes     map[uuid.UUID]*classRow
	selections  map[uuid.UUID]selection.Selection
	payments    map[payment.TransactionID]payment.Payment
	enrollments map[payment.TransactionID]enrollment.Enrollment
	settlements map[payment.TransactionID]settlement.Settlement
	failures    map[string][]error
	hooks       map[string]func()
	calls       map[string]int
}

func New() *Store {
	return &Store{
		classes:     make(map[uuid.UUID]*classRow),
		selections:  make(map[uuid.UUID]selection.Selection),
		payments:    make(map[payment.TransactionID]payment.Payment),
		enrollments: make(map[payment.TransactionID]enrollment.Enrollment),
		settlements: make(map[payment.TransactionID]settlement.Settlement),
		failures:    make(map[string][]error),
		hooks:       make(map[string]func()),
		calls:       make(map[string]int),
	}
}

// FailNext queues err for the next call of op. The failed call has no effect.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = append(s.failures[op], err)
}

// BeforeNext runs fn once, at the start of the next call of op and before
// the call touches the store. fn may call back into the store. Only
// OpSelectionDelete runs hooks.
func (s *Store) BeforeNext(op string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks[op] = fn
}

func (s *Store) runHook(op string) {
	s.mu.Lock()
	fn := s.hooks[op]
	delete(s.hooks, op)
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Calls reports how many times op ran, failed calls included.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// enter must be called with mu held.
func (s *Store) enter(op string) error {
	s.calls[op]++
	queue := s.failures[op]
	if len(queue) == 0 {
		return nil
	}
	s.failures[op] = queue[1:]
	return queue[0]
}

func (s *Store) Classes() shared.ClassRepository { return classRepo{s} }
func (s *Store) Selections() shared.SelectionRepository { return selectionRepo{s} }
func (s *Store) Payments() shared.PaymentRepository { return paymentRepo{s} }
func (s *Store) Enrollments() shared.EnrollmentRepository { return enrollmentRepo{s} }
func (s *Store) Settlements() shared.SettlementRepository { return settlementRepo{s} }
func (s *Store) Seats() shared.SeatLedger { return seatLedger{s} }

// Inspection helpers for assertions.

func (s *Store) AvailableSeat(classID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.classes[classID]; ok {
		return row.spec.AvailableSeat
	}
	return -1
}

func (s *Store) HasSelection(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selections[id]
	return ok
}

func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

func (s *Store) EnrollmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enrollments)
}

func (s *Store) Settlement(txn payment.TransactionID) (settlement.Settlement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.settlements[txn]
	return cloneSettlement(rec), ok
}

// PutSettlement overwrites a record, used to stage interrupted attempts.
func (s *Store) PutSettlement(rec settlement.Settlement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settlements[rec.TransactionID] = cloneSettlement(rec)
}

func notFound(msg string) error {
	return infra.NewRepoErr(infra.KindNotFound, msg, nil)
}

func duplicate(msg string) error {
	return infra.NewRepoErr(infra.KindDuplicateKey, msg, nil)
}

func cloneSettlement(rec settlement.Settlement) settlement.Settlement {
	if rec.PaymentID != nil {
		id := *rec.PaymentID
		rec.PaymentID = &id
	}
	if rec.EnrollmentID != nil {
		id := *rec.EnrollmentID
		rec.EnrollmentID = &id
	}
	return rec
}

type classRepo struct{ s *Store }

func (r classRepo) Create(_ context.Context, c *class.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.classes[c.ID()]; ok {
		return duplicate("class exists")
	}
	r.s.classes[c.ID()] = &classRow{
		spec:      c.Spec(),
		status:    c.Status(),
		holds:     make(map[payment.TransactionID]bool),
		createdAt: c.CreatedAt(),
		updatedAt: c.UpdatedAt(),
	}
	return nil
}

func (r classRepo) FindByID(_ context.Context, id uuid.UUID) (*class.Class, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpClassFind); err != nil {
		return nil, err
	}
	row, ok := r.s.classes[id]
	if !ok {
		return nil, notFound("class not found")
	}
	return class.Reconstruct(id, row.spec, row.status, row.createdAt, row.updatedAt), nil
}

func (r classRepo) UpdateStatus(_ context.Context, c *class.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.classes[c.ID()]
	if !ok {
		return notFound("class not found")
	}
	row.status = c.Status()
	row.updatedAt = c.UpdatedAt()
	return nil
}

type selectionRepo struct{ s *Store }

func (r selectionRepo) Create(_ context.Context, sel *selection.Selection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.selections {
		if existing.StudentEmail == sel.StudentEmail && existing.ClassID == sel.ClassID {
			return duplicate("selection exists")
		}
	}
	r.s.selections[sel.ID] = *sel
	return nil
}

func (r selectionRepo) FindByID(_ context.Context, id uuid.UUID) (*selection.Selection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpSelectionFind); err != nil {
		return nil, err
	}
	sel, ok := r.s.selections[id]
	if !ok {
		return nil, notFound("selection not found")
	}
	return &sel, nil
}

func (r selectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.runHook(OpSelectionDelete)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpSelectionDelete); err != nil {
		return err
	}
	if _, ok := r.s.selections[id]; !ok {
		return notFound("selection not found")
	}
	delete(r.s.selections, id)
	return nil
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Append(_ context.Context, p *payment.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpPaymentAppend); err != nil {
		return err
	}
	if _, ok := r.s.payments[p.TransactionID]; ok {
		return duplicate("payment exists")
	}
	r.s.payments[p.TransactionID] = *p
	return nil
}

func (r paymentRepo) FindByTransactionID(_ context.Context, txn payment.TransactionID) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[txn]
	if !ok {
		return nil, notFound("payment not found")
	}
	return &p, nil
}

type enrollmentRepo struct{ s *Store }

func (r enrollmentRepo) Append(_ context.Context, e *enrollment.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpEnrollmentAppend); err != nil {
		return err
	}
	if _, ok := r.s.enrollments[e.TransactionID]; ok {
		return duplicate("enrollment exists")
	}
	r.s.enrollments[e.TransactionID] = *e
	return nil
}

func (r enrollmentRepo) FindByTransactionID(_ context.Context, txn payment.TransactionID) (*enrollment.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.enrollments[txn]
	if !ok {
		return nil, notFound("enrollment not found")
	}
	return &e, nil
}

func (r enrollmentRepo) ExistsForStudent(_ context.Context, studentEmail string, classID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.enrollments {
		if e.StudentEmail == studentEmail && e.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

type settlementRepo struct{ s *Store }

// activeHolder must be called with mu held.
func (r settlementRepo) activeHolder(selectionID uuid.UUID, except payment.TransactionID) bool {
	for txn, rec := range r.s.settlements {
		if txn != except && rec.Snapshot.SelectionID == selectionID && rec.Status != settlement.StatusReleased {
			return true
		}
	}
	return false
}

func (r settlementRepo) Claim(_ context.Context, rec *settlement.Settlement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpSettlementClaim); err != nil {
		return err
	}
	if _, ok := r.s.settlements[rec.TransactionID]; ok {
		return duplicate("settlement exists")
	}
	if r.activeHolder(rec.Snapshot.SelectionID, rec.TransactionID) {
		return duplicate("selection already being settled")
	}
	r.s.settlements[rec.TransactionID] = cloneSettlement(*rec)
	return nil
}

func (r settlementRepo) FindByTransactionID(_ context.Context, txn payment.TransactionID) (*settlement.Settlement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpSettlementFind); err != nil {
		return nil, err
	}
	rec, ok := r.s.settlements[txn]
	if !ok {
		return nil, notFound("settlement not found")
	}
	out := cloneSettlement(rec)
	return &out, nil
}

func (r settlementRepo) Reclaim(_ context.Context, rec *settlement.Settlement, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(OpSettlementReclaim); err != nil {
		return false, err
	}
	current, ok := r.s.settlements[rec.TransactionID]
	if !ok {
		return false, nil
	}
	released := current.Status == settlement.StatusReleased
	expired := current.Status == settlement.StatusProcessing && !now.Before(current.LeaseExpiresAt)
	if (!released && !expired) || current.Attempts != rec.Attempts-1 {
		return false, nil
	}
	if r.activeHolder(rec.Snapshot.SelectionID, rec.TransactionID) {
		return false, duplicate("selection already being settled")
	}
	next := cloneSettlement(*rec)
	next.PaymentID = current.PaymentID
	next.EnrollmentID = current.EnrollmentID
	next.SeatsRemaining = current.SeatsRemaining
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = now
	r.s.settlements[rec.TransactionID] = next
	return true, nil
}

// updateProcessing applies only while rec's attempt still owns the record.
func (r settlementRepo) updateProcessing(op string, rec *settlement.Settlement, apply func(*settlement.Settlement)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return err
	}
	current, ok := r.s.settlements[rec.TransactionID]
	if !ok || current.Status != settlement.StatusProcessing || current.Attempts != rec.Attempts {
		return notFound("processing settlement not found")
	}
	apply(&current)
	r.s.settlements[rec.TransactionID] = cloneSettlement(current)
	return nil
}

func (r settlementRepo) SaveProgress(_ context.Context, rec *settlement.Settlement) error {
	return r.updateProcessing(OpSettlementSave, rec, func(cur *settlement.Settlement) {
		cur.Stage = rec.Stage
		cur.PaymentID = rec.PaymentID
		cur.EnrollmentID = rec.EnrollmentID
		cur.SeatsRemaining = rec.SeatsRemaining
		cur.UpdatedAt = rec.UpdatedAt
	})
}

func (r settlementRepo) Complete(_ context.Context, rec *settlement.Settlement) error {
	return r.updateProcessing(OpSettlementComplete, rec, func(cur *settlement.Settlement) {
		cur.Status = settlement.StatusCompleted
		cur.Stage = rec.Stage
		cur.PaymentID = rec.PaymentID
		cur.EnrollmentID = rec.EnrollmentID
		cur.UpdatedAt = rec.UpdatedAt
	})
}

func (r settlementRepo) Release(_ context.Context, rec *settlement.Settlement, now time.Time) (bool, error) {
	err := r.updateProcessing(OpSettlementRelease, rec, func(cur *settlement.Settlement) {
		cur.Status = settlement.StatusReleased
		cur.Stage = settlement.StageNone
		cur.UpdatedAt = now
	})
	if infra.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (r settlementRepo) ExpireLease(_ context.Context, rec *settlement.Settlement, now time.Time) error {
	err := r.updateProcessing(OpSettlementExpire, rec, func(cur *settlement.Settlement) {
		cur.LeaseExpiresAt = now
		cur.UpdatedAt = now
	})
	if infra.IsNotFound(err) {
		return nil
	}
	return err
}

func (r settlementRepo) ListStale(_ context.Context, now time.Time, limit int) ([]*settlement.Settlement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*settlement.Settlement
	for _, rec := range r.s.settlements {
		if len(out) >= limit {
			break
		}
		if rec.Status == settlement.StatusProcessing && !now.Before(rec.LeaseExpiresAt) {
			c := cloneSettlement(rec)
			out = append(out, &c)
		}
	}
	return out, nil
}

type seatLedger struct{ s *Store }

func (l seatLedger) ReserveSeat(_ context.Context, classID uuid.UUID, holdKey payment.TransactionID) (shared.SeatReservation, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if err := l.s.enter(OpSeatReserve); err != nil {
		return shared.SeatReservation{}, err
	}
	row, ok := l.s.classes[classID]
	if !ok {
		return shared.SeatReservation{}, notFound("class not found")
	}
	if row.holds[holdKey] {
		return shared.SeatReservation{Remaining: row.spec.AvailableSeat, AlreadyHeld: true}, nil
	}
	if row.spec.AvailableSeat <= 0 {
		return shared.SeatReservation{}, class.ErrSeatUnavailable
	}
	row.spec.AvailableSeat--
	row.holds[holdKey] = true
	return shared.SeatReservation{Remaining: row.spec.AvailableSeat}, nil
}

func (l seatLedger) ReleaseSeat(_ context.Context, classID uuid.UUID, holdKey payment.TransactionID) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if err := l.s.enter(OpSeatRelease); err != nil {
		return false, err
	}
	row, ok := l.s.classes[classID]
	if !ok || !row.holds[holdKey] {
		return false, nil
	}
	row.spec.AvailableSeat++
	delete(row.holds, holdKey)
	return true, nil
}
