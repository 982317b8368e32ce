package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tixgo/tixgo/internal/account/entity"
	"github.com/tixgo/tixgo/internal/pkg/config"
	"github.com/tixgo/tixgo/internal/pkg/goerror"
	"github.com/tixgo/tixgo/internal/pkg/idempotency"
	"github.com/tixgo/tixgo/internal/pkg/instrument"
	"github.com/tixgo/tixgo/internal/pkg/jwt"
	"github.com/tixgo/tixgo/internal/pkg/mail"
	"github.com/tixgo/tixgo/internal/pkg/validator"
)

// ---- fakes ---- //

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeHash struct {
	verifies int32
}

func (f *fakeHash) Hash(plaintext string) ([]byte, error) {
	return []byte("h:" + plaintext), nil
}

func (f *fakeHash) Verify(hashed, plaintext string) bool {
	atomic.AddInt32(&f.verifies, 1)
	return hashed == "h:"+plaintext
}

func (f *fakeHash) verifyCalls() int32 {
	return atomic.LoadInt32(&f.verifies)
}

type fakeOtpCode struct {
	codes []string
	next  int
}

func (f *fakeOtpCode) Generate() (string, error) {
	if f.next >= len(f.codes) {
		return "999999", nil
	}
	code := f.codes[f.next]
	f.next++
	return code, nil
}

type fakeUID struct {
	n int64
}

func (f *fakeUID) Generate() int64 {
	f.n++
	return f.n
}

type fakeJWT struct {
	token string
	err   error
}

func (f *fakeJWT) Generate(uid int64, email, role string) (string, error) {
	return f.token, f.err
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type fakeQueue struct {
	msgs []mail.Message
	err  error
}

func (f *fakeQueue) Enqueue(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

// passthroughIdemp runs the function directly.
type passthroughIdemp struct{}

func (passthroughIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (passthroughIdemp) MarkCompleted(context.Context, string, time.Duration) error {
	return nil
}

func (passthroughIdemp) MarkFailed(context.Context, string, time.Duration) error {
	return nil
}

func (passthroughIdemp) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	return fn(ctx)
}

type fakeConfig struct {
	config.Config
	minutes map[string]int
	ints    map[string]int
}

func (f *fakeConfig) GetMinute(key string) time.Duration {
	return time.Duration(f.minutes[key]) * time.Minute
}

func (f *fakeConfig) GetInt(key string) int {
	return f.ints[key]
}

// fakeRepo serializes token operations with a mutex, mirroring the row lock
// the real repository takes.
type fakeRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	tokens []*entity.OtpToken

	failGetUser error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*entity.User)}
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.failGetUser != nil {
		return nil, f.failGetUser
	}
	user, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) CreateUser(_ context.Context, user entity.User) error {
	if _, ok := f.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	f.users[user.Email] = &user
	return nil
}

func (f *fakeRepo) VerifyOtpAttempt(_ context.Context, email string, otpType entity.OtpType, now time.Time, verify func(codeHash string) bool) (*entity.OtpToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var candidates []*entity.OtpToken
	for _, tok := range f.tokens {
		if tok.Email == email && tok.Type == otpType && !tok.IsUsed && now.Before(tok.ExpiresAt) {
			candidates = append(candidates, tok)
		}
	}
	if len(candidates) == 0 {
		return nil, goerror.ErrNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	tok := candidates[0]

	if tok.AttemptCount >= tok.MaxAttempt {
		cp := *tok
		return &cp, entity.ErrOtpLocked
	}

	if !verify(tok.CodeHash) {
		tok.AttemptCount++
		cp := *tok
		return &cp, entity.ErrOtpMismatch
	}

	cp := *tok
	return &cp, nil
}

func (f *fakeRepo) UpsertOtpToken(_ context.Context, in entity.NewOtpToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, tok := range f.tokens {
		if tok.UserID == in.UserID && tok.Type == in.Type && !tok.IsUsed {
			tok.CodeHash = in.CodeHash
			tok.CreatedAt = in.CreatedAt
			tok.ExpiresAt = in.ExpiresAt
			tok.AttemptCount = 0
			tok.MaxAttempt = in.MaxAttempt
			tok.UsedAt = nil
			return nil
		}
	}
	f.tokens = append(f.tokens, &entity.OtpToken{
		ID:         in.ID,
		UserID:     in.UserID,
		Email:      in.Email,
		CodeHash:   in.CodeHash,
		Type:       in.Type,
		CreatedAt:  in.CreatedAt,
		ExpiresAt:  in.ExpiresAt,
		MaxAttempt: in.MaxAttempt,
	})
	return nil
}

func (f *fakeRepo) ConsumeOtpResetPassword(_ context.Context, otpID, userID int64, newHash string, usedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, tok := range f.tokens {
		if tok.ID == otpID && !tok.IsUsed {
			tok.IsUsed = true
			at := usedAt
			tok.UsedAt = &at
			for _, user := range f.users {
				if user.ID == userID {
					user.Password = newHash
				}
			}
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeRepo) activeTokens() []*entity.OtpToken {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.OtpToken
	for _, tok := range f.tokens {
		if !tok.IsUsed {
			out = append(out, tok)
		}
	}
	return out
}

// ---- harness ---- //

type harness struct {
	uc    *Usecase
	repo  *fakeRepo
	queue *fakeQueue
	clock *fakeClock
	otp   *fakeOtpCode
	hash  *fakeHash
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	h := &harness{
		repo:  newFakeRepo(),
		queue: &fakeQueue{},
		clock: &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		otp:   &fakeOtpCode{codes: []string{"123456", "654321"}},
		hash:  &fakeHash{},
	}

	h.uc = New(Dependency{
		RepoDB:      h.repo,
		MailQueue:   h.queue,
		Idempotency: passthroughIdemp{},
		Validator:   v,
		Config: &fakeConfig{
			minutes: map[string]int{
				"modules.account.otp_ttl_minutes": 5,
				"modules.account.jwt_ttl_minutes": 15,
			},
			ints: map[string]int{"modules.account.otp_max_attempt": 3},
		},
		Bcrypt:     h.hash,
		OtpCode:    h.otp,
		UID:        &fakeUID{},
		Clock:      h.clock,
		JWT:        &fakeJWT{token: "token-abc"},
		Instrument: instrument.NewNoop(),
	})

	return h
}

func (h *harness) seedUser(email, password string) *entity.User {
	user := &entity.User{
		ID:       100,
		Email:    email,
		FullName: "Avery Brooks",
		Role:     entity.RoleUser,
		Status:   entity.UserStatusActive,
		Password: "h:" + password,
	}
	h.repo.users[email] = user
	return user
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error %v is not a goerror.Error", err)
	}
	return gerr.Reason()
}
