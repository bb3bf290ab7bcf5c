// Package store is the single in-memory home of all dashboard data.
//
// A Store is constructed explicitly and owned by its caller; nothing is
// global. Every mutation runs as one transition under the store mutex: it is
// applied to a working copy and committed only when it finishes, so readers
// calling Snapshot never observe a half-applied change.
package store

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
)

// Id prefixes per collection.
const (
	PrefixCustomer     = "CUS"
	PrefixProduct      = "PRD"
	PrefixInvoice      = "INV"
	PrefixPayment      = "PAY"
	PrefixDelivery     = "DEL"
	PrefixRequirement  = "REQ"
	PrefixLead         = "LEAD"
	PrefixCampaign     = "CMP"
	PrefixNotification = "NTF"
)

// IDGenerator returns a fresh id for the given collection prefix. Ids must
// never repeat within a process, across all prefixes.
type IDGenerator func(prefix string) string

// UUIDs is the default generator: the prefix followed by a time-ordered
// UUIDv7.
func UUIDs(prefix string) string {
	return prefix + "-" + uuid.Must(uuid.NewV7()).String()
}

// SequentialIDs returns a generator issuing prefix1, prefix2, ... from one
// shared counter.
func SequentialIDs() IDGenerator {
	var n atomic.Uint64

	return func(prefix string) string {
		return prefix + strconv.FormatUint(n.Add(1), 10)
	}
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLanguage(lang i18n.Language) Option {
	return func(s *Store) { s.state.Language = lang }
}

// WithDemoData seeds the store with the sample merchant records.
func WithDemoData() Option {
	return func(s *Store) { s.seed = true }
}

type Store struct {
	mu    sync.Mutex
	state State

	now   func() time.Time
	newID IDGenerator
	seed  bool

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(State)
}

func New(opts ...Option) *Store {
	s := &Store{
		state: initialState(i18n.English),
		now:   time.Now,
		newID: UUIDs,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.seed {
		seedDemoData(&s.state, s.now(), s.state.Language)
	}

	return s
}

// Do runs fn as a single transition. All mutations made through tx become
// visible together once fn returns; if nothing changed, no revision is
// recorded and subscribers are not called.
func (s *Store) Do(fn func(tx *Tx)) {
	if committed, ok := s.commit(fn); ok {
		s.publish(committed)
	}
}

// commit applies fn under the lock. A panic in fn leaves the state as it
// was and the lock released.
func (s *Store) commit(fn func(tx *Tx)) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{state: s.state.clone(), now: s.now(), newID: s.newID}
	fn(tx)

	if !tx.changed {
		return State{}, false
	}

	tx.state.Revision = s.state.Revision + 1
	s.state = tx.state

	return s.state.clone(), true
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

// Subscribe registers fn to be called after every committed transition, in
// registration order and outside the store lock. The returned func removes
// the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()

		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(st State) {
	s.subMu.Lock()
	subs := append([]subscriber(nil), s.subs...)
	s.subMu.Unlock()

	for i, sub := range subs {
		if i == 0 {
			sub.fn(st)
			continue
		}
		sub.fn(st.clone())
	}
}

func (s *Store) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Language
}

func (s *Store) ActiveView() nav.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.ActiveView
}

func (s *Store) Customer(id string) (merchant.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return find(s.state.Customers, id, customerID)
}

func (s *Store) Product(id string) (merchant.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return find(s.state.Products, id, productID)
}

func (s *Store) Invoice(id string) (merchant.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := find(s.state.Invoices, id, invoiceID)

	return inv.Clone(), ok
}

func (s *Store) DeliveryOrder(id string) (merchant.DeliveryOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := find(s.state.DeliveryOrders, id, deliveryID)

	return d.Clone(), ok
}
