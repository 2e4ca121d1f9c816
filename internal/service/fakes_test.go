package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ekaraca/vspecs/internal/apperror"
	"github.com/ekaraca/vspecs/internal/auth"
	"github.com/ekaraca/vspecs/internal/model"
)

// fakeUserRepo is an in-memory implementation of repository.UserRepository.
// A fake rather than a mock framework: what it does is visible right here.
type fakeUserRepo struct {
	users   map[string]*model.User // keyed by internal ID
	byEmail map[string]*model.User
	nextID  int

	// set to a non-nil error to simulate a store failure on that method
	createErr  error
	getByIDErr error
	updateErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return apperror.Conflict("username already in use")
		}
		if existing.Email == user.Email {
			return apperror.Conflict("email already in use")
		}
	}
	user.ID = fmt.Sprintf("user-fake-%d", f.nextID)
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, setup model.Setup, avatar string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.MySetup = setup
	u.Avatar = avatar
	return nil
}

func (f *fakeUserRepo) UpdateFavorites(ctx context.Context, id string, favorites []int64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Favorites = favorites
	return nil
}

// fakePlayerRepo is an in-memory implementation of repository.PlayerRepository.
type fakePlayerRepo struct {
	players map[int64]*model.Player

	listErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int64]*model.Player)}
}

func (f *fakePlayerRepo) List(ctx context.Context) ([]model.Player, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.Player{}
	for _, p := range f.players {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, apperror.NotFound("player", fmt.Sprint(id))
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlayerRepo) Create(ctx context.Context, player *model.Player) error {
	if _, ok := f.players[player.ID]; ok {
		return apperror.Conflict(fmt.Sprintf("player with id %d already exists", player.ID))
	}
	copied := *player
	f.players[player.ID] = &copied
	return nil
}

func (f *fakePlayerRepo) Update(ctx context.Context, player *model.Player) error {
	if _, ok := f.players[player.ID]; !ok {
		return apperror.NotFound("player", fmt.Sprint(player.ID))
	}
	copied := *player
	f.players[player.ID] = &copied
	return nil
}

func (f *fakePlayerRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.players[id]; !ok {
		return apperror.NotFound("player", fmt.Sprint(id))
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerRepo) UpsertByName(ctx context.Context, player *model.Player) error {
	for _, existing := range f.players {
		if existing.Name == player.Name {
			player.ID = existing.ID
			return f.Update(ctx, player)
		}
	}
	return f.Create(ctx, player)
}

func (f *fakePlayerRepo) ReplaceAll(ctx context.Context, players []model.Player) error {
	f.players = make(map[int64]*model.Player)
	for i := range players {
		copied := players[i]
		f.players[copied.ID] = &copied
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAuthService wires an AuthService with fakes and fast crypto settings.
func newTestAuthService(t *testing.T, users *fakeUserRepo, players *fakePlayerRepo) *AuthService {
	t.Helper()

	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	// Cost 4 is bcrypt minimum — makes tests fast
	ps := auth.NewPasswordServiceForTest(4)

	return NewAuthService(users, players, ts, ps, testLogger())
}
