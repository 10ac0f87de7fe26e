package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/competition"
	competitionmock "github.com/riskibarqy/football-league/internal/mocks/domain/competition"
	basecache "github.com/riskibarqy/football-league/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestCompetitionRepository_GetByIDLoadsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := competitionmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "epl").
		Return(competition.Competition{ID: "epl", Name: "Premier League"}, true, nil).
		Once()

	repo := NewCompetitionRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 3; i++ {
		item, exists, err := repo.GetByID(ctx, "epl")
		if err != nil || !exists || item.Name != "Premier League" {
			t.Fatalf("unexpected result: item=%+v exists=%v err=%v", item, exists, err)
		}
	}
}

func TestCompetitionRepository_CachesMissingLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := competitionmock.NewRepository(t)
	next.On("GetByID", mock.Anything, "unknown").
		Return(competition.Competition{}, false, nil).
		Once()

	repo := NewCompetitionRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 2; i++ {
		if _, exists, err := repo.GetByID(ctx, "unknown"); err != nil || exists {
			t.Fatalf("expected cached miss, exists=%v err=%v", exists, err)
		}
	}
}
