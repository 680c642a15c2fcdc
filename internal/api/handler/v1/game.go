package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/squares-pool/internal/api/handler/v1/request"
	"github.com/vietanh2810/squares-pool/internal/api/handler/v1/response"
	"github.com/vietanh2810/squares-pool/internal/domain"
)

type GameHandler struct {
	svc PoolService
}

func NewGameHandler(svc PoolService) *GameHandler {
	return &GameHandler{
		svc: svc,
	}
}

// HandleCreateGame godoc
// @Summary      Create a game
// @Description  Adds a tournament game to the board. Admin only.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        boardID  path      int                        true  "Board ID"
// @Param        request  body      request.CreateGameRequest  true  "Game details"
// @Success      201      {object}  domain.Game
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /boards/{boardID}/games [post]
// @Security BearerAuth
func (h *GameHandler) HandleCreateGame(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	var req request.CreateGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	game, err := h.svc.CreateGame(ctx.Request.Context(), domain.Game{
		BoardID:    boardID,
		GameNumber: req.GameNumber,
		Round:      req.Round,
		Team1:      req.Team1,
		Team2:      req.Team2,
	})
	if err != nil {
		renderServiceErr(ctx, "HandleCreateGame -> h.svc.CreateGame", err)
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

// HandleUpdateScore godoc
// @Summary      Update a game score
// @Description  Records the score. A COMPLETED game pays the square holding score1 mod 10 and score2 mod 10. Admin only.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        gameID   path      int                         true  "Game ID"
// @Param        request  body      request.UpdateScoreRequest  true  "Score"
// @Success      200      {object}  service.ScoringResult
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID}/score [put]
// @Security BearerAuth
func (h *GameHandler) HandleUpdateScore(ctx *gin.Context) {
	gameID, ok := parseID(ctx, "gameID")
	if !ok {
		return
	}

	var req request.UpdateScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.UpdateGameScore(ctx.Request.Context(), gameID, *req.Score1, *req.Score2, req.Status)
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateScore -> h.svc.UpdateGameScore", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleGetScoringTable godoc
// @Summary      Get the scoring table
// @Description  Lists the board's games by round and game number, with winners and payouts.
// @Tags         games
// @Produce      json
// @Param        boardID  path      int  true  "Board ID"
// @Success      200      {object}  domain.ScoringTable
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /boards/{boardID}/scoring [get]
// @Security BearerAuth
func (h *GameHandler) HandleGetScoringTable(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	table, err := h.svc.GetScoringTable(ctx.Request.Context(), boardID)
	if err != nil {
		renderServiceErr(ctx, "HandleGetScoringTable -> h.svc.GetScoringTable", err)
		return
	}

	ctx.JSON(http.StatusOK, table)
}
