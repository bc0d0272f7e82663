package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/repositories"
	"github.com/ffarena/arena-backend/storage"
)

type fakeTournamentRepo struct {
	mu          sync.Mutex
	seq         int
	tournaments map[string]*models.Tournament
	err         error
	closedIDs   []string
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.tournaments {
		if existing.TournamentName == t.TournamentName {
			return repositories.ErrTournamentNameConflict
		}
	}
	f.seq++
	t.ID = fmt.Sprintf("tour-%d", f.seq)
	t.CreatedAt = time.Now()
	f.tournaments[t.ID] = t
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Tournament
	for _, t := range f.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && t.TournamentType != *filter.Type {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	copied := *t
	f.tournaments[t.ID] = &copied
	return nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.tournaments, id)
	return nil
}

func (f *fakeTournamentRepo) UpdateBannerKey(ctx context.Context, id string, bannerKey *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.BannerKey = bannerKey
	return nil
}

func (f *fakeTournamentRepo) CloseStarted(ctx context.Context, now time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var flipped []string
	for id, t := range f.tournaments {
		if t.Status == models.StatusOpen && t.StartDateTime.Before(now) {
			t.Status = models.StatusClosed
			flipped = append(flipped, id)
		}
	}
	f.closedIDs = flipped
	return flipped, nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	seq   int
	teams map[string]*models.Team
	err   error
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*models.Team)}
}

func (f *fakeTeamRepo) add(team models.Team) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if team.ID == "" {
		team.ID = fmt.Sprintf("team-%d", f.seq)
	}
	f.teams[team.ID] = &team
	return team.ID
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.seq++
	team.ID = fmt.Sprintf("team-%d", f.seq)
	copied := *team
	f.teams[team.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id string) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Team
	for _, team := range f.teams {
		if team.TournamentID == tournamentID {
			out = append(out, *team)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	teams, err := f.ListByTournament(ctx, tournamentID)
	if err != nil {
		return 0, err
	}
	return len(teams), nil
}

func (f *fakeTeamRepo) with(id string, fn func(*models.Team)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	fn(team)
	return nil
}

func (f *fakeTeamRepo) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	return f.with(id, func(t *models.Team) { t.PaymentStatus = status })
}

func (f *fakeTeamRepo) UpdateSlot(ctx context.Context, id string, slot *int) error {
	return f.with(id, func(t *models.Team) { t.Slot = slot })
}

func (f *fakeTeamRepo) UpdateRoomCredsSent(ctx context.Context, id string, sent bool) error {
	return f.with(id, func(t *models.Team) { t.RoomCredsSent = sent })
}

func (f *fakeTeamRepo) UpdateResult(ctx context.Context, id string, kills int, resultRank *int, prizeAmount int) error {
	return f.with(id, func(t *models.Team) {
		t.Kills = kills
		t.ResultRank = resultRank
		t.PrizeAmount = prizeAmount
	})
}

func (f *fakeTeamRepo) UpdatePayoutStatus(ctx context.Context, id string, status models.PayoutStatus) error {
	return f.with(id, func(t *models.Team) { t.PayoutStatus = status })
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players []*models.Player
	err     error
}

func (f *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	player.ID = fmt.Sprintf("player-%d", len(f.players)+1)
	f.players = append(f.players, player)
	return nil
}

func (f *fakePlayerRepo) GetByUID(ctx context.Context, gameUID string) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.UID == gameUID {
			return p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return repositories.ErrUserEmailConflict
	}
	user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeUploader struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
}

var _ storage.FileUploader = (*fakeUploader)(nil)

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, data io.Reader) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return &storage.UploadResult{
		Key:      key,
		Location: "https://cdn.test/" + key,
	}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	return "https://cdn.test/" + key
}
