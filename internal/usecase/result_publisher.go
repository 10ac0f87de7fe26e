package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/football-league/internal/domain/match"
)

type ResultChangeKind string

const (
	// ResultRecorded is emitted when a match reaches full time.
	ResultRecorded ResultChangeKind = "RESULT_RECORDED"
	// ResultCorrected is emitted when the score of a finished match changes.
	ResultCorrected ResultChangeKind = "RESULT_CORRECTED"
	// ResultRemoved is emitted when a finished match is deleted.
	ResultRemoved ResultChangeKind = "RESULT_REMOVED"
)

// ResultChange describes a committed change to a result that counts towards
// the standings.
type ResultChange struct {
	Kind          ResultChangeKind
	CompetitionID string
	MatchID       string
	HomeTeamID    string
	AwayTeamID    string
	Score         match.Score
	Previous      match.Score
	OccurredAt    time.Time
}

// ResultPublisher receives result changes after commit. Implementations must
// not block the caller and must not fail the command.
type ResultPublisher interface {
	PublishResult(ctx context.Context, change ResultChange)
}

func newResultChange(kind ResultChangeKind, m match.Match, previous match.Score, at time.Time) ResultChange {
	return ResultChange{
		Kind:          kind,
		CompetitionID: m.CompetitionID,
		MatchID:       m.ID,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		Score:         m.Score(),
		Previous:      previous,
		OccurredAt:    at.UTC(),
	}
}
