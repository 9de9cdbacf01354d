package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"identity-platform/internal/usersvc/domain"
	"identity-platform/shared/eventbus"
	"identity-platform/shared/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileStore struct {
	profiles map[int64]*domain.Profile
	failWith error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[int64]*domain.Profile)}
}

func (s *fakeProfileStore) CreateIfAbsent(_ context.Context, p *domain.Profile) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	if _, ok := s.profiles[p.ID]; ok {
		return false, nil
	}
	cp := *p
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.profiles[p.ID] = &cp
	return true, nil
}

func (s *fakeProfileStore) UpdateIdentity(_ context.Context, userID int64, username, email, firstName, lastName string) error {
	if s.failWith != nil {
		return s.failWith
	}
	p, ok := s.profiles[userID]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	p.Username = username
	p.Email = email
	p.FirstName = firstName
	p.LastName = lastName
	p.UpdatedAt = time.Now()
	return nil
}

func (s *fakeProfileStore) UpdateProfileFields(_ context.Context, userID int64, patch domain.ProfilePatch) error {
	p, ok := s.profiles[userID]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	if patch.PhoneNumber != nil {
		p.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (s *fakeProfileStore) Deactivate(_ context.Context, userID int64) error {
	p, ok := s.profiles[userID]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	p.Active = false
	return nil
}

func (s *fakeProfileStore) Delete(_ context.Context, userID int64) error {
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.profiles[userID]; !ok {
		return xerrors.ErrUserNotFound
	}
	delete(s.profiles, userID)
	return nil
}

func (s *fakeProfileStore) UpdateLastLogin(_ context.Context, userID int64) error {
	p, ok := s.profiles[userID]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	now := time.Now()
	p.LastLoginAt = &now
	return nil
}

func (s *fakeProfileStore) GetByID(_ context.Context, userID int64) (*domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	return p, nil
}

func (s *fakeProfileStore) GetByUsername(_ context.Context, username string) (*domain.Profile, error) {
	for _, p := range s.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, xerrors.ErrUserNotFound
}

func (s *fakeProfileStore) Exists(_ context.Context, userID int64) (bool, error) {
	_, ok := s.profiles[userID]
	return ok, nil
}

func (s *fakeProfileStore) List(_ context.Context, limit, offset int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range s.profiles {
		out = append(out, p)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func createdEvent(userID int64, username string) eventbus.UserEvent {
	return eventbus.UserEvent{
		EventType: eventbus.EventUserCreated,
		UserID:    userID,
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
		Timestamp: time.Now().UnixMilli(),
	}
}

func TestSyncCreatesProfile(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	require.NoError(t, uc.SyncFromEvent(context.Background(), createdEvent(1, "alice")))

	p, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "alice@example.com", p.Email)
}

func TestSyncDuplicateCreateIsNoop(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	ev := createdEvent(1, "alice")
	require.NoError(t, uc.SyncFromEvent(context.Background(), ev))

	// Replayed delivery must not clobber or error.
	require.NoError(t, store.UpdateIdentity(context.Background(), 1, "alice", "newer@example.com", "First", "Last"))
	require.NoError(t, uc.SyncFromEvent(context.Background(), ev))

	p, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "newer@example.com", p.Email)
}

func TestSyncUpdateAppliesIdentityFields(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	require.NoError(t, uc.SyncFromEvent(context.Background(), createdEvent(1, "alice")))
	require.NoError(t, uc.SyncFromEvent(context.Background(), eventbus.UserEvent{
		EventType: eventbus.EventUserUpdated,
		UserID:    1,
		Username:  "alice",
		Email:     "alice@corp.example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}))

	p, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice@corp.example.com", p.Email)
	assert.Equal(t, "Alice Smith", p.FullName())
}

func TestSyncUpdateBeforeCreateDoesNotRecreate(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	require.NoError(t, uc.SyncFromEvent(context.Background(), eventbus.UserEvent{
		EventType: eventbus.EventUserUpdated,
		UserID:    7,
		Email:     "ghost@example.com",
	}))

	_, err := uc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, xerrors.ErrUserNotFound)
}

func TestSyncDeleteRemovesProfile(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	require.NoError(t, uc.SyncFromEvent(context.Background(), createdEvent(1, "alice")))
	require.NoError(t, uc.SyncFromEvent(context.Background(), eventbus.UserEvent{
		EventType: eventbus.EventUserDeleted,
		UserID:    1,
	}))

	_, err := uc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, xerrors.ErrUserNotFound)

	// Replayed delete stays silent.
	require.NoError(t, uc.SyncFromEvent(context.Background(), eventbus.UserEvent{
		EventType: eventbus.EventUserDeleted,
		UserID:    1,
	}))
}

func TestSyncUnknownEventTypeIgnored(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfileStore())
	require.NoError(t, uc.SyncFromEvent(context.Background(), eventbus.UserEvent{
		EventType: "USER_EXPLODED",
		UserID:    1,
	}))
}

func TestSyncSurfacesStoreFailures(t *testing.T) {
	store := newFakeProfileStore()
	store.failWith = errors.New("connection refused")
	uc := NewProfileUsecase(store)

	err := uc.SyncFromEvent(context.Background(), createdEvent(1, "alice"))
	require.Error(t, err)
}

func TestProfileLifecycleOverBus(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	bus := eventbus.NewMemoryBus()
	bus.Subscribe(eventbus.TopicUserEvents, uc.SyncFromEvent)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, eventbus.TopicUserEvents, createdEvent(1, "alice")))
	require.NoError(t, bus.Publish(ctx, eventbus.TopicUserEvents, eventbus.UserEvent{
		EventType: eventbus.EventUserUpdated,
		UserID:    1,
		Username:  "alice",
		Email:     "alice@corp.example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}))

	p, err := uc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@corp.example.com", p.Email)

	require.NoError(t, bus.Publish(ctx, eventbus.TopicUserEvents, eventbus.UserEvent{
		EventType: eventbus.EventUserDeleted,
		UserID:    1,
	}))

	_, err = uc.Get(ctx, 1)
	assert.ErrorIs(t, err, xerrors.ErrUserNotFound)
}

func TestUpdatePatchesProfileFieldsOnly(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	require.NoError(t, uc.SyncFromEvent(context.Background(), createdEvent(1, "alice")))

	bio := "hello"
	city := "Nairobi"
	p, err := uc.Update(context.Background(), 1, domain.ProfilePatch{Bio: &bio, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Bio)
	assert.Equal(t, "Nairobi", p.City)
	assert.Equal(t, "alice", p.Username)
	assert.Empty(t, p.PhoneNumber)
}

func TestDeactivateKeepsRow(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	require.NoError(t, uc.SyncFromEvent(context.Background(), createdEvent(1, "alice")))
	require.NoError(t, uc.Deactivate(context.Background(), 1))

	p, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, p.Active)
}

func TestListClampsPageSize(t *testing.T) {
	store := newFakeProfileStore()
	uc := NewProfileUsecase(store)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, uc.SyncFromEvent(context.Background(), createdEvent(i, "user")))
	}

	out, err := uc.List(context.Background(), -1, -5)
	require.NoError(t, err)
	assert.Len(t, out, 5)

	out, err = uc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
