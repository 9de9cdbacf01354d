package usecase

import (
	"context"
	"testing"
	"time"

	userdomain "identity-platform/internal/usersvc/domain"
	userusecase "identity-platform/internal/usersvc/usecase"
	"identity-platform/shared/eventbus"
	"identity-platform/shared/id"
	"identity-platform/shared/jwtutil"
	"identity-platform/shared/xerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replicaStore is the profile side of the end-to-end path.
type replicaStore struct {
	profiles map[int64]*userdomain.Profile
}

func newReplicaStore() *replicaStore {
	return &replicaStore{profiles: make(map[int64]*userdomain.Profile)}
}

func (s *replicaStore) CreateIfAbsent(_ context.Context, p *userdomain.Profile) (bool, error) {
	if _, ok := s.profiles[p.ID]; ok {
		return false, nil
	}
	cp := *p
	s.profiles[p.ID] = &cp
	return true, nil
}

func (s *replicaStore) UpdateIdentity(_ context.Context, userID int64, username, email, firstName, lastName string) error {
	p, ok := s.profiles[userID]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	p.Username = username
	p.Email = email
	p.FirstName = firstName
	p.LastName = lastName
	return nil
}

func (s *replicaStore) Delete(_ context.Context, userID int64) error {
	if _, ok := s.profiles[userID]; !ok {
		return xerrors.ErrUserNotFound
	}
	delete(s.profiles, userID)
	return nil
}

func (s *replicaStore) UpdateProfileFields(_ context.Context, userID int64, _ userdomain.ProfilePatch) error {
	if _, ok := s.profiles[userID]; !ok {
		return xerrors.ErrUserNotFound
	}
	return nil
}

func (s *replicaStore) Deactivate(_ context.Context, userID int64) error {
	p, ok := s.profiles[userID]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	p.Active = false
	return nil
}

func (s *replicaStore) UpdateLastLogin(_ context.Context, userID int64) error {
	if _, ok := s.profiles[userID]; !ok {
		return xerrors.ErrUserNotFound
	}
	return nil
}

func (s *replicaStore) GetByID(_ context.Context, userID int64) (*userdomain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	return p, nil
}

func (s *replicaStore) GetByUsername(_ context.Context, username string) (*userdomain.Profile, error) {
	for _, p := range s.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, xerrors.ErrUserNotFound
}

func (s *replicaStore) Exists(_ context.Context, userID int64) (bool, error) {
	_, ok := s.profiles[userID]
	return ok, nil
}

func (s *replicaStore) List(_ context.Context, limit, _ int) ([]*userdomain.Profile, error) {
	var out []*userdomain.Profile
	for _, p := range s.profiles {
		out = append(out, p)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TestRegisterValidateAndProfileSync walks the whole platform path over the
// in-memory bus: register issues a token that validates, and the USER_CREATED
// and later lifecycle events materialize and retire the profile replica.
func TestRegisterValidateAndProfileSync(t *testing.T) {
	codec, err := jwtutil.NewCodec([]byte("e2e-secret"), "auth-service", 0)
	require.NoError(t, err)
	sf, err := id.NewSnowflake(3)
	require.NoError(t, err)

	bus := eventbus.NewMemoryBus()
	replica := newReplicaStore()
	profileUC := userusecase.NewProfileUsecase(replica)
	bus.Subscribe(eventbus.TopicUserEvents, profileUC.SyncFromEvent)

	authUC := NewUserUsecase(newFakeUserStore(), sf, codec, bus, time.Hour)

	ctx := context.Background()
	res, err := authUC.Register(ctx, RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "Sup3rSecret!",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	v := authUC.ValidateToken(ctx, res.AccessToken)
	require.True(t, v.Valid)
	assert.Equal(t, res.UserID, v.UserID)

	p, err := profileUC.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, res.UserID, p.ID)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.True(t, p.Active)

	require.NoError(t, authUC.UpdateIdentity(ctx, res.UserID, UpdateIdentityRequest{
		Email:     "alice@corp.example.com",
		FirstName: "Alice",
		LastName:  "Jones",
	}))
	p, err = profileUC.Get(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@corp.example.com", p.Email)

	require.NoError(t, authUC.Deactivate(ctx, res.UserID))
	_, err = profileUC.Get(ctx, res.UserID)
	assert.ErrorIs(t, err, xerrors.ErrUserNotFound)
}
