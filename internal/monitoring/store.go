package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Operation names reported to change listeners.
const (
	OpAdd       = "add"
	OpRemove    = "remove"
	OpUpdate    = "update"
	OpBroadcast = "broadcast"
	OpReset     = "reset"
)

// Change describes one applied mutation.
type Change struct {
	Collection Collection
	Op         string
	Version    int64
}

// ChangeListener is invoked after every applied mutation, outside the store lock.
type ChangeListener func(ctx context.Context, ch Change)

// Options configures a Store.
type Options struct {
	Repository Repository
	Seed       SeedFunc
	// LoadDelay keeps the store in the loading state after Open.
	LoadDelay time.Duration
	// Attach keeps records already present in the repository and seeds
	// only when every collection is empty.
	Attach bool
	Logger *slog.Logger
	Now       func() time.Time
}

// Store owns every survey collection. Reads and mutations are safe for
// concurrent use; each mutation is a single read-modify-replace under the write lock.
type Store struct {
	repo   Repository
	seed   SeedFunc
	logger *slog.Logger
	now    func() time.Time

	ready     chan struct{}
	readyOnce sync.Once

	mu       sync.RWMutex
	identity map[Collection]map[string]string

	version atomic.Int64

	listenersMu sync.RWMutex
	listeners   []ChangeListener
}

// Open seeds every collection through the repository and starts the loading window.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s := &Store{
		repo:     opts.Repository,
		seed:     opts.Seed,
		logger:   opts.Logger,
		now:      opts.Now,
		ready:    make(chan struct{}),
		identity: make(map[Collection]map[string]string),
	}
	if s.repo == nil {
		s.repo = NewMemoryRepository()
	}
	if s.seed == nil {
		s.seed = DefaultSeed(1)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	seeded := false
	if opts.Attach {
		var err error
		if seeded, err = s.hasRecords(ctx); err != nil {
			return nil, err
		}
	}
	if !seeded {
		if err := s.reseed(ctx); err != nil {
			return nil, err
		}
	} else {
		ver, err := s.repo.Version(ctx)
		if err != nil {
			return nil, err
		}
		s.version.Store(ver)
	}
	if opts.LoadDelay <= 0 {
		s.markReady()
	} else {
		time.AfterFunc(opts.LoadDelay, s.markReady)
	}
	return s, nil
}

func (s *Store) markReady() {
	s.readyOnce.Do(func() {
		close(s.ready)
		s.logger.Info("monitoring store ready", slog.Int64("version", s.version.Load()))
	})
}

// Ready reports whether the initial loading window has elapsed.
func (s *Store) Ready() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// WaitReady blocks until the store is ready or ctx is done.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrNotReady, ctx.Err())
	}
}

// Version returns the last mutation counter this Store observed. The
// counter lives in the repository and is shared by every Store on it.
func (s *Store) Version() int64 {
	return s.version.Load()
}

// observeVersion raises the local copy of the counter to ver.
func (s *Store) observeVersion(ver int64) {
	for {
		cur := s.version.Load()
		if ver <= cur || s.version.CompareAndSwap(cur, ver) {
			return
		}
	}
}

// OnChange registers fn to run after every mutation.
func (s *Store) OnChange(fn ChangeListener) {
	if fn == nil {
		return
	}
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

func (s *Store) notify(ctx context.Context, c Collection, op string) {
	ver, err := s.repo.BumpVersion(ctx)
	if err != nil {
		s.logger.Warn("bump store version", slog.String("collection", string(c)), slog.Any("error", err))
		ver = s.version.Add(1)
	} else {
		s.observeVersion(ver)
	}
	ch := Change{Collection: c, Op: op, Version: ver}
	s.listenersMu.RLock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(ctx, ch)
	}
}

// All returns a copy of the collection. While loading it returns an empty slice.
func (s *Store) All(ctx context.Context, c Collection) ([]Record, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}
	if !s.Ready() {
		return []Record{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Load(ctx, c)
}

// Snapshot captures every collection at one store version.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{records: make(map[Collection][]Record, len(Collections()))}
	if !s.Ready() {
		snap.Loading = true
		return snap, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ver, err := s.repo.Version(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s.observeVersion(ver)
	snap.Version = ver
	for _, c := range Collections() {
		records, err := s.repo.Load(ctx, c)
		if err != nil {
			return Snapshot{}, err
		}
		snap.records[c] = records
	}
	return snap, nil
}

// AddRecord appends a record with the next id. The remembered identity values
// of the collection are applied first, then fields. Unknown fields are ignored.
func (s *Store) AddRecord(ctx context.Context, c Collection, fields map[string]string) (Record, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}
	if err := s.WaitReady(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	records, err := s.repo.Load(ctx, c)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	rec := NewRecord(c.Kind())
	m := rec.meta()
	m.ID = nextID(records)
	m.CreatedAt = s.now()
	for field, value := range s.identity[c] {
		rec.Set(field, value)
	}
	for field, value := range fields {
		rec.Set(field, value)
	}
	records = append(records, rec)
	if err := s.repo.Save(ctx, c, records); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()
	s.notify(ctx, c, OpAdd)
	return rec.Clone(), nil
}

// RemoveRecord drops the record with id. It reports whether a record was removed.
func (s *Store) RemoveRecord(ctx context.Context, c Collection, id int) (bool, error) {
	if !c.Valid() {
		return false, ErrUnknownCollection
	}
	if err := s.WaitReady(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	records, err := s.repo.Load(ctx, c)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	kept := records[:0]
	for _, r := range records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		s.mu.Unlock()
		return false, nil
	}
	if err := s.repo.Save(ctx, c, kept); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()
	s.notify(ctx, c, OpRemove)
	return true, nil
}

// UpdateField sets field on the record with id only. Unknown ids and fields
// leave the collection untouched and report false.
func (s *Store) UpdateField(ctx context.Context, c Collection, id int, field, value string) (bool, error) {
	if !c.Valid() {
		return false, ErrUnknownCollection
	}
	if err := s.WaitReady(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	records, err := s.repo.Load(ctx, c)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	changed := false
	for _, r := range records {
		if r.RecordID() == id {
			changed = r.Set(field, value)
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return false, nil
	}
	if err := s.repo.Save(ctx, c, records); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()
	s.notify(ctx, c, OpUpdate)
	return true, nil
}

// BroadcastField writes value into field on every record of the collection
// and remembers it as the identity value for records added later. Fields the
// kind does not carry are ignored.
func (s *Store) BroadcastField(ctx context.Context, c Collection, field, value string) error {
	if !c.Valid() {
		return ErrUnknownCollection
	}
	if !settable(c.Kind(), field) {
		return nil
	}
	if err := s.WaitReady(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	records, err := s.repo.Load(ctx, c)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	for _, r := range records {
		r.Set(field, value)
	}
	if err := s.repo.Save(ctx, c, records); err != nil {
		s.mu.Unlock()
		return err
	}
	ident := s.identity[c]
	if ident == nil {
		ident = make(map[string]string)
		s.identity[c] = ident
	}
	ident[field] = value
	s.mu.Unlock()
	s.notify(ctx, c, OpBroadcast)
	return nil
}

// BroadcastDate broadcasts a YYYY-MM-DD picker value as a DD/MM/YYYY date.
func (s *Store) BroadcastDate(ctx context.Context, c Collection, iso string) error {
	return s.BroadcastField(ctx, c, "date", DateFromISO(iso))
}

// BroadcastTime broadcasts an HH:MM picker value as an HH.MM time.
func (s *Store) BroadcastTime(ctx context.Context, c Collection, picker string) error {
	return s.BroadcastField(ctx, c, "time", TimeFromPicker(picker))
}

// Identity returns a copy of the remembered identity values of the collection.
func (s *Store) Identity(c Collection) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.identity[c]))
	for k, v := range s.identity[c] {
		out[k] = v
	}
	return out
}

// ResetIdentity forgets the remembered identity values of the collection.
// Records keep their current values.
func (s *Store) ResetIdentity(c Collection, confirm bool) error {
	if !c.Valid() {
		return ErrUnknownCollection
	}
	if !confirm {
		return ErrConfirmRequired
	}
	s.mu.Lock()
	delete(s.identity, c)
	s.mu.Unlock()
	return nil
}

// Reset restores the seed data of every collection and clears identity state.
func (s *Store) Reset(ctx context.Context, confirm bool) error {
	if !confirm {
		return ErrConfirmRequired
	}
	if err := s.WaitReady(ctx); err != nil {
		return err
	}
	if err := s.reseed(ctx); err != nil {
		return err
	}
	s.logger.Info("monitoring store reset", slog.Int64("version", s.version.Load()))
	return nil
}

func (s *Store) reseed(ctx context.Context) error {
	seeded := s.seed(s.now())
	s.mu.Lock()
	var errs []error
	for _, c := range Collections() {
		if err := s.repo.Save(ctx, c, seeded[c]); err != nil {
			errs = append(errs, fmt.Errorf("seed %s: %w", c, err))
		}
	}
	s.identity = make(map[Collection]map[string]string)
	s.mu.Unlock()
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.notify(ctx, "", OpReset)
	return nil
}

func (s *Store) hasRecords(ctx context.Context) (bool, error) {
	for _, c := range Collections() {
		records, err := s.repo.Load(ctx, c)
		if err != nil {
			return false, err
		}
		if len(records) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func nextID(records []Record) int {
	maxID := 0
	for _, r := range records {
		if id := r.RecordID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func settable(kind Kind, field string) bool {
	probe := NewRecord(kind)
	if probe == nil {
		return false
	}
	return probe.Set(field, "")
}

// Snapshot is a read-only view of every collection at one version.
type Snapshot struct {
	Loading bool
	Version int64
	records map[Collection][]Record
}

// NewSnapshot builds a snapshot from explicit collections.
func NewSnapshot(records map[Collection][]Record) Snapshot {
	snap := Snapshot{records: make(map[Collection][]Record, len(records))}
	for c, list := range records {
		snap.records[c] = list
	}
	return snap
}

// Records returns the records of c in storage order.
func (s Snapshot) Records(c Collection) []Record {
	return s.records[c]
}

// Count returns the number of records in c.
func (s Snapshot) Count(c Collection) int {
	return len(s.records[c])
}

// Spices returns the spice records of one location collection.
func (s Snapshot) Spices(c Collection) []*SpiceRecord {
	return typed[*SpiceRecord](s.records[c])
}

// Rice returns the rice records.
func (s Snapshot) Rice() []*RiceRecord {
	return typed[*RiceRecord](s.records[CollectionRice])
}

// RTE returns the ready-to-eat records.
func (s Snapshot) RTE() []*RTERecord {
	return typed[*RTERecord](s.records[CollectionRTE])
}

// Tenants returns the tenant records.
func (s Snapshot) Tenants() []*TenantRecord {
	return typed[*TenantRecord](s.records[CollectionTenant])
}

// Expeditions returns the expedition records.
func (s Snapshot) Expeditions() []*ExpeditionRecord {
	return typed[*ExpeditionRecord](s.records[CollectionExpedition])
}

// Telecom returns the telecom records.
func (s Snapshot) Telecom() []*TelecomRecord {
	return typed[*TelecomRecord](s.records[CollectionTelecom])
}

func typed[T Record](records []Record) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
