package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/dmitrijs2005/streetsmarts/internal/cryptox"
	"github.com/dmitrijs2005/streetsmarts/internal/dbx"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/dmitrijs2005/streetsmarts/internal/server/repositories/locations"
	usersrepo "github.com/dmitrijs2005/streetsmarts/internal/server/repositories/users"
)

var cheapParams = cryptox.Params{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo keeps users in memory, keyed by id.
type fakeUsersRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	nextID int

	createErr error
	getErr    error
	scoreErr  error
	topOut    []models.LeaderboardEntry
	topLimit  int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.UserName == u.UserName {
			return nil, common.ErrAlreadyExists
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.UserName == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) AddScore(_ context.Context, id string, points int) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scoreErr != nil {
		return 0, 0, f.scoreErr
	}
	u, ok := f.byID[id]
	if !ok {
		return 0, 0, common.ErrorNotFound
	}
	u.TotalScore += int64(points)
	u.RoundsPlayed++
	return u.TotalScore, u.RoundsPlayed, nil
}

func (f *fakeUsersRepo) Top(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topLimit = limit
	if f.topOut != nil {
		return f.topOut, nil
	}

	out := make([]models.LeaderboardEntry, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, models.LeaderboardEntry{UserName: u.UserName, TotalScore: u.TotalScore, RoundsPlayed: u.RoundsPlayed})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].UserName < out[j].UserName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeLocationsRepo struct {
	locs      map[int64]*models.Location
	count     int64
	countErr  error
	createErr error
	created   []models.Location
	setRefs   map[int64]string
	setRefErr error
	randomID  int64
}

func newFakeLocationsRepo(locs ...models.Location) *fakeLocationsRepo {
	f := &fakeLocationsRepo{locs: map[int64]*models.Location{}, setRefs: map[int64]string{}}
	for i := range locs {
		l := locs[i]
		f.locs[l.ID] = &l
		f.randomID = l.ID
	}
	f.count = int64(len(locs))
	return f
}

func (f *fakeLocationsRepo) Count(context.Context) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeLocationsRepo) Create(_ context.Context, loc *models.Location) (*models.Location, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	loc.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *loc)
	return loc, nil
}

func (f *fakeLocationsRepo) GetByID(_ context.Context, id int64) (*models.Location, error) {
	l, ok := f.locs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationsRepo) Random(context.Context) (*models.Location, error) {
	if len(f.locs) == 0 {
		return nil, common.ErrNoLocations
	}
	cp := *f.locs[f.randomID]
	return &cp, nil
}

func (f *fakeLocationsRepo) SetImageRef(_ context.Context, id int64, ref string) error {
	if f.setRefErr != nil {
		return f.setRefErr
	}
	f.setRefs[id] = ref
	if l, ok := f.locs[id]; ok {
		l.ImageRef = ref
	}
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	l *fakeLocationsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Locations(dbx.DBTX) locations.Repository     { return m.l }
