package request

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

// Letters, digits, spaces and .&'- only, and not a bare number.
const teamNamePattern = `^(?!\d+$)[A-Za-z0-9 .&'\-]{2,40}$`

var (
	teamNameExp = regexp2.MustCompile(teamNamePattern, regexp2.None)

	errInvalidTeamName = errors.New("must be 2-40 letters, digits, spaces or .&'- and not only digits")
)

func teamName(value interface{}) error {
	s, _ := value.(string)
	ok, err := teamNameExp.MatchString(s)
	if err != nil {
		return fmt.Errorf("teamNameExp.MatchString -> %w", err)
	}
	if !ok {
		return errInvalidTeamName
	}

	return nil
}

func roundValues() []interface{} {
	values := make([]interface{}, len(domain.Rounds))
	for i, r := range domain.Rounds {
		values[i] = r
	}

	return values
}

type CreateGameRequest struct {
	GameNumber int          `json:"gameNumber" binding:"required"`
	Round      domain.Round `json:"round" binding:"required" enums:"ROUND1,ROUND2,SWEET16,ELITE8,FINAL4,CHAMPIONSHIP"`
	Team1      string       `json:"team1" binding:"required"`
	Team2      string       `json:"team2" binding:"required"`
}

func (req *CreateGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GameNumber, validation.Required, validation.Min(1)),
		validation.Field(&req.Round, validation.Required, validation.In(roundValues()...)),
		validation.Field(&req.Team1, validation.Required, validation.By(teamName)),
		validation.Field(&req.Team2, validation.Required, validation.By(teamName)),
	)
}

type UpdateScoreRequest struct {
	Score1 *int              `json:"score1" binding:"required"`
	Score2 *int              `json:"score2" binding:"required"`
	Status domain.GameStatus `json:"status" binding:"required" enums:"SCHEDULED,IN_PROGRESS,COMPLETED"`
}

func (req *UpdateScoreRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Score1, validation.NotNil, validation.Min(0)),
		validation.Field(&req.Score2, validation.NotNil, validation.Min(0)),
		validation.Field(&req.Status, validation.Required,
			validation.In(domain.GameScheduled, domain.GameInProgress, domain.GameCompleted)),
	)
}
