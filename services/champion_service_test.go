package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/repositories"
)

type fakeChampionRepo struct {
	mu        sync.Mutex
	seq       int
	champions map[string]*models.Champion
}

func newFakeChampionRepo() *fakeChampionRepo {
	return &fakeChampionRepo{champions: make(map[string]*models.Champion)}
}

func (f *fakeChampionRepo) Create(ctx context.Context, c *models.Champion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	c.ID = fmt.Sprintf("champ-%d", f.seq)
	copied := *c
	f.champions[c.ID] = &copied
	return nil
}

func (f *fakeChampionRepo) GetByID(ctx context.Context, id string) (*models.Champion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.champions[id]
	if !ok {
		return nil, repositories.ErrChampionNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeChampionRepo) List(ctx context.Context) ([]models.Champion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Champion
	for _, c := range f.champions {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeChampionRepo) Update(ctx context.Context, c *models.Champion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.champions[c.ID]; !ok {
		return repositories.ErrChampionNotFound
	}
	copied := *c
	f.champions[c.ID] = &copied
	return nil
}

func (f *fakeChampionRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.champions[id]; !ok {
		return repositories.ErrChampionNotFound
	}
	delete(f.champions, id)
	return nil
}

func (f *fakeChampionRepo) UpdateMediaKeys(ctx context.Context, id string, heroKey, proofKey *string, galleryKeys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.champions[id]
	if !ok {
		return repositories.ErrChampionNotFound
	}
	c.HeroKey = heroKey
	c.ProofKey = proofKey
	c.GalleryKeys = galleryKeys
	return nil
}

func championInput() ChampionInput {
	return ChampionInput{
		TeamName:    "Alpha Squad",
		CaptainName: "AlphaOne",
		Players: []models.ChampionPlayer{
			{Name: "AlphaOne", UID: "1234567"},
			{Name: "AlphaTwo", UID: "2345678"},
		},
	}
}

// TestCreateChampionDenormalizesTournament checks the tournament name is
// resolved from the referenced ID when omitted.
func TestCreateChampionDenormalizesTournament(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo()
	tournament := openTournament(tournamentRepo, 12)

	svc := NewChampionService(newFakeChampionRepo(), tournamentRepo, &fakeUploader{}, nil)

	input := championInput()
	input.TournamentID = tournament.ID
	created, err := svc.CreateChampion(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Weekend Cup", created.TournamentName)
	assert.NotEmpty(t, created.ID)
}

// TestCreateChampionValidation checks the required-team guard and the
// unknown-tournament mapping.
func TestCreateChampionValidation(t *testing.T) {
	svc := NewChampionService(newFakeChampionRepo(), newFakeTournamentRepo(), &fakeUploader{}, nil)

	input := championInput()
	input.TeamName = "  "
	_, err := svc.CreateChampion(context.Background(), input)
	assert.ErrorIs(t, err, ErrChampionTeamRequired)

	input = championInput()
	input.TournamentID = "missing"
	_, err = svc.CreateChampion(context.Background(), input)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

// TestUploadChampionMedia checks hero, proof and gallery keys are stored and
// resolved to URLs, with gallery appends preserved across uploads.
func TestUploadChampionMedia(t *testing.T) {
	repo := newFakeChampionRepo()
	uploader := &fakeUploader{}
	svc := NewChampionService(repo, newFakeTournamentRepo(), uploader, nil)

	created, err := svc.CreateChampion(context.Background(), championInput())
	require.NoError(t, err)

	updated, err := svc.UploadMedia(context.Background(), created.ID, ChampionMedia{
		Hero:  &MediaFile{ContentType: "image/png", Data: strings.NewReader("hero")},
		Proof: &MediaFile{ContentType: "image/jpeg", Data: strings.NewReader("proof")},
		Gallery: []MediaFile{
			{ContentType: "image/webp", Data: strings.NewReader("g1")},
			{ContentType: "image/png", Data: strings.NewReader("g2")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.HeroImageURL)
	require.NotNil(t, updated.ProofImageURL)
	assert.Len(t, updated.GalleryMediaURLs, 2)
	assert.Len(t, uploader.uploads, 4)
	for _, key := range uploader.uploads {
		assert.True(t, strings.HasPrefix(key, "champions/"))
	}

	// A second gallery-only upload appends instead of replacing.
	updated, err = svc.UploadMedia(context.Background(), created.ID, ChampionMedia{
		Gallery: []MediaFile{{ContentType: "image/png", Data: strings.NewReader("g3")}},
	})
	require.NoError(t, err)
	assert.Len(t, updated.GalleryMediaURLs, 3)
	require.NotNil(t, updated.HeroImageURL)
}

// TestUploadChampionMediaRejectsUnknownType checks the image policy applies
// to every part.
func TestUploadChampionMediaRejectsUnknownType(t *testing.T) {
	repo := newFakeChampionRepo()
	svc := NewChampionService(repo, newFakeTournamentRepo(), &fakeUploader{}, nil)

	created, err := svc.CreateChampion(context.Background(), championInput())
	require.NoError(t, err)

	_, err = svc.UploadMedia(context.Background(), created.ID, ChampionMedia{
		Hero: &MediaFile{ContentType: "image/bmp", Data: strings.NewReader("bmp")},
	})
	assert.ErrorIs(t, err, ErrUnsupportedImageType)
}

// TestDeleteChampionCleansMedia checks every stored object is removed with
// the record.
func TestDeleteChampionCleansMedia(t *testing.T) {
	repo := newFakeChampionRepo()
	uploader := &fakeUploader{}
	svc := NewChampionService(repo, newFakeTournamentRepo(), uploader, nil)

	created, err := svc.CreateChampion(context.Background(), championInput())
	require.NoError(t, err)

	_, err = svc.UploadMedia(context.Background(), created.ID, ChampionMedia{
		Hero:    &MediaFile{ContentType: "image/png", Data: strings.NewReader("hero")},
		Gallery: []MediaFile{{ContentType: "image/png", Data: strings.NewReader("g1")}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteChampion(context.Background(), created.ID))
	assert.ElementsMatch(t, uploader.uploads, uploader.deleted)

	err = svc.DeleteChampion(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrChampionNotFound)
}
