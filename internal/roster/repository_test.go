package roster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameroster/internal/dependencies/mocks"
	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/search"
	"github.com/mcoot/gameroster/internal/sorting"
	"github.com/mcoot/gameroster/internal/storage/file"
	"github.com/mcoot/gameroster/internal/storage/memory"
	"github.com/mcoot/gameroster/internal/testutil"
)

type RepositorySuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	repo    *Repository
	ctx     context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.repo = New(s.storage, Options{
		Clock:  s.clock,
		Logger: testutil.NopLogger(),
	})
	s.ctx = context.Background()
	s.Require().NoError(s.repo.LoadAll(s.ctx))
}

func (s *RepositorySuite) saved() []model.Player {
	players, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	return players
}

func (s *RepositorySuite) addAll(players ...model.Player) {
	for _, p := range players {
		_, err := s.repo.Add(s.ctx, p.ID, p.Username)
		s.Require().NoError(err)
	}
}

func playerIDs(players []model.Player) []model.PlayerID {
	out := make([]model.PlayerID, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

// Add

func (s *RepositorySuite) TestAddThenGetByID() {
	created, err := s.repo.Add(s.ctx, 1001, "test_user")
	s.Require().NoError(err)
	s.Equal(model.Player{ID: 1001, Username: "test_user"}, created)

	got, err := s.repo.GetByID(s.ctx, 1001)
	s.Require().NoError(err)
	s.Equal(model.Player{ID: 1001, Username: "test_user"}, got)
}

func (s *RepositorySuite) TestAddWritesThrough() {
	s.addAll(model.Player{ID: 1, Username: "a"}, model.Player{ID: 2, Username: "b"})

	s.Equal([]model.Player{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}, s.saved())
}

func (s *RepositorySuite) TestAddDuplicateIDIsRejected() {
	_, err := s.repo.Add(s.ctx, 2002, "dup1")
	s.Require().NoError(err)

	_, err = s.repo.Add(s.ctx, 2002, "dup2")
	s.ErrorIs(err, model.ErrDuplicateID)

	got, err := s.repo.GetByID(s.ctx, 2002)
	s.Require().NoError(err)
	s.Equal("dup1", got.Username)
	s.Equal(1, s.repo.Count())
	s.Len(s.saved(), 1)
}

func (s *RepositorySuite) TestAddDuplicateLeavesStatsUntouched() {
	s.addAll(model.Player{ID: 5, Username: "orig"})
	_, err := s.repo.UpdateStats(s.ctx, 5, 3.5, 40)
	s.Require().NoError(err)

	_, err = s.repo.Add(s.ctx, 5, "other")
	s.ErrorIs(err, model.ErrDuplicateID)

	got, err := s.repo.GetByID(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal(model.Player{ID: 5, Username: "orig", HoursPlayed: 3.5, HighScore: 40}, got)
}

func (s *RepositorySuite) TestAddEmptyUsernameIsInvalid() {
	_, err := s.repo.Add(s.ctx, 1, "")
	s.ErrorIs(err, model.ErrInvalidArgument)
	s.Zero(s.repo.Count())
}

func (s *RepositorySuite) TestAddKeepsOriginalCasing() {
	s.addAll(model.Player{ID: 4004, Username: "SEARCH_ME"})

	got, err := s.repo.GetByID(s.ctx, 4004)
	s.Require().NoError(err)
	s.Equal("SEARCH_ME", got.Username)
}

// Lookups

func (s *RepositorySuite) TestGetByIDNotFound() {
	_, err := s.repo.GetByID(s.ctx, 404)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RepositorySuite) TestGetByUsernameIsCaseInsensitive() {
	s.addAll(model.Player{ID: 4004, Username: "SEARCH_ME"})

	byID, err := s.repo.GetByID(s.ctx, 4004)
	s.Require().NoError(err)
	byName, err := s.repo.GetByUsername(s.ctx, "search_me")
	s.Require().NoError(err)
	s.Equal(byID, byName)
}

func (s *RepositorySuite) TestGetByUsernameFirstInsertedWins() {
	s.addAll(model.Player{ID: 9, Username: "twin"}, model.Player{ID: 1, Username: "TWIN"})

	got, err := s.repo.GetByUsername(s.ctx, "Twin")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(9), got.ID)
}

func (s *RepositorySuite) TestGetByUsernameNotFound() {
	s.addAll(model.Player{ID: 1, Username: "alice"})

	_, err := s.repo.GetByUsername(s.ctx, "ali")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RepositorySuite) TestLookupsHaveNoSideEffects() {
	s.addAll(model.Player{ID: 1, Username: "a"})
	linesBefore := len(s.storage.Lines())

	_, _ = s.repo.GetByID(s.ctx, 1)
	_, _ = s.repo.GetByUsername(s.ctx, "A")
	_, _ = s.repo.GetByID(s.ctx, 2)

	s.Len(s.storage.Lines(), linesBefore)
}

// UpdateStats

func (s *RepositorySuite) TestUpdateStatsOverwrites() {
	s.addAll(model.Player{ID: 3003, Username: "updater"})

	_, err := s.repo.UpdateStats(s.ctx, 3003, 2.5, 800)
	s.Require().NoError(err)
	updated, err := s.repo.UpdateStats(s.ctx, 3003, 1.25, 100)
	s.Require().NoError(err)
	s.Equal(1.25, updated.HoursPlayed)
	s.Equal(100, updated.HighScore)

	got, err := s.repo.GetByID(s.ctx, 3003)
	s.Require().NoError(err)
	s.Equal(1.25, got.HoursPlayed, "no accumulation")
	s.Equal(100, got.HighScore)
	s.Equal([]model.Player{got}, s.saved())
}

func (s *RepositorySuite) TestUpdateStatsAllowsLowerScore() {
	s.addAll(model.Player{ID: 1, Username: "a"})
	_, err := s.repo.UpdateStats(s.ctx, 1, 1, 500)
	s.Require().NoError(err)

	got, err := s.repo.UpdateStats(s.ctx, 1, 1, 10)
	s.Require().NoError(err)
	s.Equal(10, got.HighScore)
}

func (s *RepositorySuite) TestUpdateStatsNotFound() {
	_, err := s.repo.UpdateStats(s.ctx, 77, 1, 1)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RepositorySuite) TestUpdateStatsNegativeHoursIsInvalid() {
	s.addAll(model.Player{ID: 1, Username: "a"})

	_, err := s.repo.UpdateStats(s.ctx, 1, -0.1, 5)
	s.ErrorIs(err, model.ErrInvalidArgument)

	got, err := s.repo.GetByID(s.ctx, 1)
	s.Require().NoError(err)
	s.Zero(got.HoursPlayed)
	s.Zero(got.HighScore)
}

// Rename

func (s *RepositorySuite) TestRename() {
	s.addAll(model.Player{ID: 1, Username: "old"})

	renamed, err := s.repo.Rename(s.ctx, 1, "New")
	s.Require().NoError(err)
	s.Equal("New", renamed.Username)

	got, err := s.repo.GetByUsername(s.ctx, "new")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), got.ID)
	s.Equal("New", s.saved()[0].Username)
}

func (s *RepositorySuite) TestRenameValidation() {
	s.addAll(model.Player{ID: 1, Username: "old"})

	_, err := s.repo.Rename(s.ctx, 1, " ")
	s.ErrorIs(err, model.ErrInvalidArgument)

	_, err = s.repo.Rename(s.ctx, 2, "x")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Delete

func (s *RepositorySuite) TestDelete() {
	s.addAll(model.Player{ID: 1, Username: "a"}, model.Player{ID: 2, Username: "b"}, model.Player{ID: 3, Username: "c"})

	s.Require().NoError(s.repo.Delete(s.ctx, 2))

	_, err := s.repo.GetByID(s.ctx, 2)
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Equal([]model.PlayerID{1, 3}, playerIDs(s.repo.List(s.ctx)))
	s.Equal([]model.PlayerID{1, 3}, playerIDs(s.saved()))
}

func (s *RepositorySuite) TestDeleteNotFound() {
	err := s.repo.Delete(s.ctx, 2)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RepositorySuite) TestDeletedIDCanBeReused() {
	s.addAll(model.Player{ID: 1, Username: "a"})
	s.Require().NoError(s.repo.Delete(s.ctx, 1))

	_, err := s.repo.Add(s.ctx, 1, "again")
	s.NoError(err)
}

// Persistence failure

func (s *RepositorySuite) TestFailedSaveLeavesNoPhantomAdd() {
	s.addAll(model.Player{ID: 1, Username: "a"})
	s.storage.FailSaves(errors.New("disk full"))

	_, err := s.repo.Add(s.ctx, 2, "b")
	s.ErrorIs(err, model.ErrIOFailure)

	_, err = s.repo.GetByID(s.ctx, 2)
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Equal(1, s.repo.Count())

	// The id is still free once storage recovers
	s.storage.FailSaves(nil)
	_, err = s.repo.Add(s.ctx, 2, "b")
	s.NoError(err)
}

func (s *RepositorySuite) TestFailedSaveRevertsUpdateRenameDelete() {
	s.addAll(model.Player{ID: 1, Username: "a"})
	s.storage.FailSaves(errors.New("disk full"))

	_, err := s.repo.UpdateStats(s.ctx, 1, 9, 9)
	s.ErrorIs(err, model.ErrIOFailure)
	_, err = s.repo.Rename(s.ctx, 1, "z")
	s.ErrorIs(err, model.ErrIOFailure)
	err = s.repo.Delete(s.ctx, 1)
	s.ErrorIs(err, model.ErrIOFailure)

	got, err := s.repo.GetByID(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.Player{ID: 1, Username: "a"}, got)
	s.Equal([]model.Player{got}, s.saved())
}

func (s *RepositorySuite) TestFailedAuditDoesNotFailMutation() {
	logger, buf := testutil.BufferLogger()
	repo := New(s.storage, Options{Clock: s.clock, Logger: logger})
	s.storage.FailLogs(errors.New("log volume gone"))

	_, err := repo.Add(s.ctx, 1, "a")
	s.Require().NoError(err)
	s.Len(s.saved(), 1)
	s.Contains(buf.String(), `"msg":"failed to append audit line"`)
	s.Contains(buf.String(), `"component":"roster"`)
}

// Audit trail

func (s *RepositorySuite) TestAuditLinePerMutation() {
	s.addAll(model.Player{ID: 1001, Username: "test_user"})
	_, _ = s.repo.Add(s.ctx, 1001, "again")
	_, _ = s.repo.UpdateStats(s.ctx, 1001, 2.5, 800)
	_, _ = s.repo.Rename(s.ctx, 1001, "renamed")
	_ = s.repo.Delete(s.ctx, 1001)
	_ = s.repo.Delete(s.ctx, 1001)

	s.Equal([]string{
		`2024-01-01T12:00:00Z ADD id=1001 PASS username="test_user"`,
		`2024-01-01T12:00:00Z ADD id=1001 FAIL username="again" error="player id already exists: 1001"`,
		`2024-01-01T12:00:00Z UPDATE id=1001 PASS hours_played=2.5 high_score=800`,
		`2024-01-01T12:00:00Z RENAME id=1001 PASS username="renamed"`,
		`2024-01-01T12:00:00Z DELETE id=1001 PASS`,
		`2024-01-01T12:00:00Z DELETE id=1001 FAIL error="player not found: 1001"`,
	}, s.storage.Lines())
}

func (s *RepositorySuite) TestAuditUsesClock() {
	s.clock.Step = time.Minute
	s.addAll(model.Player{ID: 1, Username: "a"}, model.Player{ID: 2, Username: "b"})

	lines := s.storage.Lines()
	s.Require().Len(lines, 2)
	s.True(strings.HasPrefix(lines[0], "2024-01-01T12:00:00Z"))
	s.True(strings.HasPrefix(lines[1], "2024-01-01T12:01:00Z"))
}

// Sort

func (s *RepositorySuite) TestSortByIDWithEveryStrategy() {
	s.addAll(model.Player{ID: 3, Username: "z"}, model.Player{ID: 1, Username: "x"}, model.Player{ID: 2, Username: "y"})

	for _, strategy := range []sorting.Strategy{sorting.NewInsertionStrategy(), sorting.NewComparisonStrategy()} {
		s.repo.SetSortStrategy(strategy)

		asc, err := s.repo.Sort(s.ctx, model.SortByID, true)
		s.Require().NoError(err)
		s.Equal([]model.PlayerID{1, 2, 3}, playerIDs(asc), strategy.Name())

		desc, err := s.repo.Sort(s.ctx, model.SortByID, false)
		s.Require().NoError(err)
		s.Equal([]model.PlayerID{3, 2, 1}, playerIDs(desc), strategy.Name())
	}
}

func (s *RepositorySuite) TestSortKeepsCanonicalOrder() {
	s.addAll(model.Player{ID: 3, Username: "z"}, model.Player{ID: 1, Username: "x"}, model.Player{ID: 2, Username: "y"})

	_, err := s.repo.Sort(s.ctx, model.SortByID, true)
	s.Require().NoError(err)

	s.Equal([]model.PlayerID{3, 1, 2}, playerIDs(s.repo.List(s.ctx)))
	s.Equal([]model.PlayerID{3, 1, 2}, playerIDs(s.saved()))
}

func (s *RepositorySuite) TestSortIsIdempotent() {
	s.addAll(model.Player{ID: 3, Username: "b"}, model.Player{ID: 1, Username: "B"}, model.Player{ID: 2, Username: "a"})

	first, err := s.repo.Sort(s.ctx, model.SortByUsername, true)
	s.Require().NoError(err)
	second, err := s.repo.Sort(s.ctx, model.SortByUsername, true)
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal([]model.PlayerID{2, 3, 1}, playerIDs(first))
}

func (s *RepositorySuite) TestSortUnknownFieldIsInvalid() {
	_, err := s.repo.Sort(s.ctx, model.SortField("rank"), true)
	s.ErrorIs(err, model.ErrInvalidArgument)
}

func (s *RepositorySuite) TestSetSortStrategyNilRestoresDefault() {
	s.repo.SetSortStrategy(sorting.NewComparisonStrategy())
	s.Equal(model.SortStrategyComparison, s.repo.SortStrategy().Name())

	s.repo.SetSortStrategy(nil)
	s.Equal(model.SortStrategyInsertion, s.repo.SortStrategy().Name())
}

// Loading

// countingSearch records how often the repository consults it
type countingSearch struct {
	search.Strategy
	calls int
}

func (c *countingSearch) FindByID(players []model.Player, id model.PlayerID) (model.Player, bool) {
	c.calls++
	return c.Strategy.FindByID(players, id)
}

func (s *RepositorySuite) TestSetSearchStrategyIsUsedForLookups() {
	s.addAll(model.Player{ID: 1, Username: "a"})
	counting := &countingSearch{Strategy: search.NewLinearStrategy()}
	s.repo.SetSearchStrategy(counting)

	_, err := s.repo.GetByID(s.ctx, 1)
	s.Require().NoError(err)
	_, err = s.repo.Add(s.ctx, 1, "dup")
	s.ErrorIs(err, model.ErrDuplicateID)
	s.Equal(2, counting.calls)

	s.repo.SetSearchStrategy(nil)
	_, err = s.repo.GetByID(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(2, counting.calls)
}

func (s *RepositorySuite) TestLoadAllRestoresSavedRoster() {
	s.addAll(model.Player{ID: 1, Username: "a"}, model.Player{ID: 2, Username: "b"})

	reloaded := New(s.storage, Options{Logger: testutil.NopLogger()})
	s.Require().NoError(reloaded.LoadAll(s.ctx))
	s.Equal(s.repo.List(s.ctx), reloaded.List(s.ctx))
}

// File-backed repositories

type FileRepositorySuite struct {
	suite.Suite
	cfg file.Config
	ctx context.Context
}

func TestFileRepositorySuite(t *testing.T) {
	suite.Run(t, new(FileRepositorySuite))
}

func (s *FileRepositorySuite) SetupTest() {
	dir := s.T().TempDir()
	s.cfg = file.Config{
		DataPath: filepath.Join(dir, "players_test.json"),
		LogPath:  filepath.Join(dir, "actions_test.txt"),
	}
	s.ctx = context.Background()
}

func (s *FileRepositorySuite) newRepo() *Repository {
	return New(file.New(s.cfg), Options{Logger: testutil.NopLogger()})
}

func (s *FileRepositorySuite) TestFreshSystemIsEmpty() {
	repo := s.newRepo()
	s.Require().NoError(repo.LoadAll(s.ctx))
	s.Zero(repo.Count())
}

func (s *FileRepositorySuite) TestRosterSurvivesRestart() {
	repo := s.newRepo()
	s.Require().NoError(repo.LoadAll(s.ctx))
	_, err := repo.Add(s.ctx, 1001, "test_user")
	s.Require().NoError(err)
	_, err = repo.UpdateStats(s.ctx, 1001, 2.5, 800)
	s.Require().NoError(err)

	restarted := s.newRepo()
	s.Require().NoError(restarted.LoadAll(s.ctx))
	got, err := restarted.GetByID(s.ctx, 1001)
	s.Require().NoError(err)
	s.Equal(model.Player{ID: 1001, Username: "test_user", HoursPlayed: 2.5, HighScore: 800}, got)

	log, err := os.ReadFile(s.cfg.LogPath)
	s.Require().NoError(err)
	s.Equal(2, strings.Count(string(log), "\n"))
	s.Contains(string(log), "ADD id=1001 PASS")
	s.Contains(string(log), "UPDATE id=1001 PASS")
}

func (s *FileRepositorySuite) TestCorruptFileIsReported() {
	s.Require().NoError(os.WriteFile(s.cfg.DataPath, []byte("{not json"), 0o644))

	repo := s.newRepo()
	err := repo.LoadAll(s.ctx)
	s.ErrorIs(err, model.ErrCorruptData)
	s.Zero(repo.Count())
}
