// Package usecasetest provides in-memory implementations of the domain ports
// for exercising use cases without a database.
package usecasetest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
)

// FixedTimeProvider implements core.TimeProvider with a settable clock
type FixedTimeProvider struct {
	Current time.Time
}

// NewFixedTimeProvider pins the clock to the given instant
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{Current: t}
}

func (p *FixedTimeProvider) Now() time.Time { return p.Current }
func (p *FixedTimeProvider) Since(t time.Time) coreport.Duration {
	return coreport.Duration(p.Current.Sub(t))
}
func (p *FixedTimeProvider) Until(t time.Time) coreport.Duration {
	return coreport.Duration(t.Sub(p.Current))
}
func (p *FixedTimeProvider) Sleep(coreport.Duration) {}
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
func (p *FixedTimeProvider) ParseDuration(s string) (coreport.Duration, error) {
	d, err := time.ParseDuration(s)
	return coreport.Duration(d), err
}

// PlainHasher is a transparent stand-in for the bcrypt adapter
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return "digest:" + password, nil }
func (PlainHasher) Verify(password, digest string) bool  { return "digest:"+password == digest }

// SequenceCodeGenerator yields deterministic codes. Codes repeat once the
// sequence is exhausted, which lets collision handling be tested.
type SequenceCodeGenerator struct {
	Codes  []string
	Tokens []string
	codeI  int
	tokenI int
	photoI int
}

// Reset rewinds the group code sequence to its start
func (g *SequenceCodeGenerator) Reset() {
	g.codeI = 0
}

func (g *SequenceCodeGenerator) GroupCode() string {
	if len(g.Codes) == 0 {
		return "code0000"
	}
	code := g.Codes[g.codeI%len(g.Codes)]
	g.codeI++
	return code
}

func (g *SequenceCodeGenerator) SessionToken() string {
	if len(g.Tokens) == 0 {
		g.tokenI++
		return fmt.Sprintf("token-%d", g.tokenI)
	}
	token := g.Tokens[g.tokenI%len(g.Tokens)]
	g.tokenI++
	return token
}

func (g *SequenceCodeGenerator) PhotoName(extension string) string {
	g.photoI++
	return fmt.Sprintf("photo-%d%s", g.photoI, extension)
}

// Store bundles the in-memory tables behind every fake repository
type Store struct {
	mu sync.Mutex

	users    map[uint64]*entity.User
	groups   map[string]*entity.Group
	records  map[uint64]map[int]*entity.SavingRecord
	sessions map[string]*persistence.Session

	nextUserID   uint64
	nextGroupID  uint64
	nextRecordID uint64

	// ForcedErr, when set, is returned by every repository call.
	// Used to simulate an unreachable store.
	ForcedErr error
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		users:    make(map[uint64]*entity.User),
		groups:   make(map[string]*entity.Group),
		records:  make(map[uint64]map[int]*entity.SavingRecord),
		sessions: make(map[string]*persistence.Session),
	}
}

// Users returns a fake user repository over the store
func (s *Store) Users() persistence.UserRepository { return &userRepo{s} }

// Groups returns a fake group repository over the store
func (s *Store) Groups() persistence.GroupRepository { return &groupRepo{s} }

// Records returns a fake ledger repository over the store
func (s *Store) Records() persistence.RecordRepository { return &recordRepo{s} }

// Sessions returns a fake session repository over the store
func (s *Store) Sessions() persistence.SessionRepository { return &sessionRepo{s} }

// UnitOfWork returns a fake unit of work whose repositories share the store.
// Transactions are not simulated; Begin/Commit/Rollback only count calls.
func (s *Store) UnitOfWork() *FakeUnitOfWork { return &FakeUnitOfWork{store: s} }

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	user, ok := r.s.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	for _, user := range r.s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return errs.ErrDuplicateUsername
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	if _, ok := r.s.users[user.ID]; !ok {
		return errs.ErrUserNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	if _, ok := r.s.users[id]; !ok {
		return errs.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) ListByGroupCode(_ context.Context, groupCode string) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	var members []*entity.User
	for _, user := range r.s.users {
		if user.GroupCode == groupCode {
			cp := *user
			members = append(members, &cp)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

type groupRepo struct{ s *Store }

func (r *groupRepo) GetByCode(_ context.Context, code string) (*entity.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	group, ok := r.s.groups[code]
	if !ok {
		return nil, errs.ErrGroupNotFound
	}
	cp := *group
	return &cp, nil
}

func (r *groupRepo) CodeExists(_ context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return false, r.s.ForcedErr
	}
	_, ok := r.s.groups[code]
	return ok, nil
}

func (r *groupRepo) Create(_ context.Context, group *entity.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	if _, ok := r.s.groups[group.Code]; ok {
		return errs.ErrConstraintViolation
	}
	r.s.nextGroupID++
	group.ID = r.s.nextGroupID
	cp := *group
	r.s.groups[group.Code] = &cp
	return nil
}

func (r *groupRepo) Rename(_ context.Context, code, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	group, ok := r.s.groups[code]
	if !ok {
		return errs.ErrGroupNotFound
	}
	group.Name = name
	return nil
}

type recordRepo struct{ s *Store }

func (r *recordRepo) Upsert(_ context.Context, record *entity.SavingRecord) (*persistence.UpsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}

	slots, ok := r.s.records[record.UserID]
	if !ok {
		slots = make(map[int]*entity.SavingRecord)
		r.s.records[record.UserID] = slots
	}

	if existing, ok := slots[record.DayNumber]; ok {
		result := &persistence.UpsertResult{RecordID: existing.ID}
		existing.Note = record.Note
		existing.SavedOn = record.SavedOn
		if record.Photo != "" && record.Photo != existing.Photo {
			result.ReplacedPhoto = existing.Photo
			existing.Photo = record.Photo
		}
		return result, nil
	}

	r.s.nextRecordID++
	record.ID = r.s.nextRecordID
	cp := *record
	slots[record.DayNumber] = &cp
	return &persistence.UpsertResult{RecordID: record.ID, Created: true}, nil
}

func (r *recordRepo) GetByUserAndDay(_ context.Context, userID uint64, dayNumber int) (*entity.SavingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	rec, ok := r.s.records[userID][dayNumber]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *recordRepo) DeleteByUserAndDay(_ context.Context, userID uint64, dayNumber int) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return "", r.s.ForcedErr
	}
	rec, ok := r.s.records[userID][dayNumber]
	if !ok {
		return "", nil
	}
	delete(r.s.records[userID], dayNumber)
	return rec.Photo, nil
}

func (r *recordRepo) ClearForUser(_ context.Context, userID uint64) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	var photos []string
	for _, rec := range r.s.records[userID] {
		if rec.Photo != "" {
			photos = append(photos, rec.Photo)
		}
	}
	delete(r.s.records, userID)
	return photos, nil
}

func (r *recordRepo) ListForUser(_ context.Context, userID uint64) ([]*entity.SavingRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	var out []*entity.SavingRecord
	for _, rec := range r.s.records[userID] {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(_ context.Context, session *persistence.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	cp := *session
	r.s.sessions[session.Token] = &cp
	return nil
}

func (r *sessionRepo) GetByToken(_ context.Context, token string) (*persistence.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return nil, r.s.ForcedErr
	}
	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, errs.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (r *sessionRepo) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	delete(r.s.sessions, token)
	return nil
}

func (r *sessionRepo) DeleteForUser(_ context.Context, userID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ForcedErr != nil {
		return r.s.ForcedErr
	}
	for token, sess := range r.s.sessions {
		if sess.UserID == userID {
			delete(r.s.sessions, token)
		}
	}
	return nil
}

// SessionCount reports how many sessions a user currently has
func (s *Store) SessionCount(userID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			n++
		}
	}
	return n
}

// GroupCount reports how many groups exist
func (s *Store) GroupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups)
}

// FakeUnitOfWork hands out repositories bound to the shared store.
// BeginErr can be set to make Begin fail.
type FakeUnitOfWork struct {
	store     *Store
	BeginErr  error
	Begun     int
	Committed int
	RolledBck int
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u.BeginErr != nil {
		return ctx, u.BeginErr
	}
	u.Begun++
	return ctx, nil
}

func (u *FakeUnitOfWork) Commit(context.Context) error {
	u.Committed++
	return nil
}

func (u *FakeUnitOfWork) Rollback(context.Context) error {
	u.RolledBck++
	return nil
}

func (u *FakeUnitOfWork) GetUserRepository(context.Context) persistence.UserRepository {
	return u.store.Users()
}

func (u *FakeUnitOfWork) GetGroupRepository(context.Context) persistence.GroupRepository {
	return u.store.Groups()
}

func (u *FakeUnitOfWork) GetRecordRepository(context.Context) persistence.RecordRepository {
	return u.store.Records()
}

func (u *FakeUnitOfWork) GetSessionRepository(context.Context) persistence.SessionRepository {
	return u.store.Sessions()
}

// MemoryPhotoStore keeps stored photos in a map
type MemoryPhotoStore struct {
	mu    sync.Mutex
	Files map[string][]byte
}

// NewMemoryPhotoStore creates an empty photo store
func NewMemoryPhotoStore() *MemoryPhotoStore {
	return &MemoryPhotoStore{Files: make(map[string][]byte)}
}

func (p *MemoryPhotoStore) Save(_ context.Context, name string, content io.Reader) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", err
	}
	p.Files[name] = buf.Bytes()
	return name, nil
}

func (p *MemoryPhotoStore) Remove(_ context.Context, reference string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.Files, reference)
	return nil
}

// Has reports whether a photo reference is currently stored
func (p *MemoryPhotoStore) Has(reference string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.Files[reference]
	return ok
}

// NoopLogger discards all log output
type NoopLogger struct{}

func (NoopLogger) SetLevel(coreport.LogLevel)   {}
func (NoopLogger) GetLevel() coreport.LogLevel  { return coreport.LogLevelInfo }
func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}
func (NoopLogger) Flush() error                 { return nil }
