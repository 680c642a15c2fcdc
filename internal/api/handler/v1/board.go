package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/squares-pool/internal/api/handler/v1/request"
	"github.com/vietanh2810/squares-pool/internal/api/handler/v1/response"
	"github.com/vietanh2810/squares-pool/internal/api/middleware"
	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/service"
)

type PoolService interface {
	CreateBoard(ctx context.Context, board domain.Board) (domain.Board, error)
	GetBoard(ctx context.Context, boardID uint) (domain.BoardSummary, error)
	ListSquares(ctx context.Context, boardID uint) ([]domain.Square, error)
	ClaimSquares(ctx context.Context, boardID uint, ownerID string, count int) ([]domain.Square, error)
	ConfirmPayment(ctx context.Context, squareID uint) (domain.Square, error)
	TriggerAssignment(ctx context.Context, boardID uint) (service.AssignmentResult, error)
	StartTournament(ctx context.Context, boardID uint) (domain.Board, error)
	EndTournament(ctx context.Context, boardID uint) (domain.Board, error)
	CreateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	UpdateGameScore(ctx context.Context, gameID uint, score1, score2 int, status domain.GameStatus) (service.ScoringResult, error)
	GetScoringTable(ctx context.Context, boardID uint) (domain.ScoringTable, error)
}

type BoardHandler struct {
	svc PoolService
}

func NewBoardHandler(svc PoolService) *BoardHandler {
	return &BoardHandler{
		svc: svc,
	}
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %s %q", param, ctx.Param(param))))
		return 0, false
	}

	return uint(id), true
}

func renderServiceErr(ctx *gin.Context, op string, err error) {
	response.RenderErr(ctx, response.FromDomain(fmt.Errorf("%s -> %w", op, err)))
}

// HandleCreateBoard godoc
// @Summary      Create a board
// @Description  Creates an OPEN board. Admin only.
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateBoardRequest  true  "Board details"
// @Success      201      {object}  domain.Board
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /boards [post]
// @Security BearerAuth
func (h *BoardHandler) HandleCreateBoard(ctx *gin.Context) {
	var req request.CreateBoardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	board, err := h.svc.CreateBoard(ctx.Request.Context(), domain.Board{
		Name:           req.Name,
		PricePerSquare: req.PricePerSquare,
		Payouts:        req.PayoutStructure,
	})
	if err != nil {
		renderServiceErr(ctx, "HandleCreateBoard -> h.svc.CreateBoard", err)
		return
	}

	ctx.JSON(http.StatusCreated, board)
}

// HandleGetBoard godoc
// @Summary      Get a board
// @Description  Returns the board with its claimed and paid square counts.
// @Tags         boards
// @Produce      json
// @Param        boardID  path      int  true  "Board ID"
// @Success      200      {object}  domain.BoardSummary
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /boards/{boardID} [get]
// @Security BearerAuth
func (h *BoardHandler) HandleGetBoard(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	summary, err := h.svc.GetBoard(ctx.Request.Context(), boardID)
	if err != nil {
		renderServiceErr(ctx, "HandleGetBoard -> h.svc.GetBoard", err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleListSquares godoc
// @Summary      List squares
// @Description  Lists the board's squares in claim order.
// @Tags         boards
// @Produce      json
// @Param        boardID  path      int  true  "Board ID"
// @Success      200      {array}   domain.Square
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /boards/{boardID}/squares [get]
// @Security BearerAuth
func (h *BoardHandler) HandleListSquares(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	squares, err := h.svc.ListSquares(ctx.Request.Context(), boardID)
	if err != nil {
		renderServiceErr(ctx, "HandleListSquares -> h.svc.ListSquares", err)
		return
	}

	ctx.JSON(http.StatusOK, squares)
}

// HandleClaimSquares godoc
// @Summary      Claim squares
// @Description  Reserves count PENDING squares for the caller. At most 10 per owner and 100 per board.
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        boardID  path      int                          true  "Board ID"
// @Param        request  body      request.ClaimSquaresRequest  true  "Number of squares"
// @Success      201      {array}   domain.Square
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /boards/{boardID}/claims [post]
// @Security BearerAuth
func (h *BoardHandler) HandleClaimSquares(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	var req request.ClaimSquaresRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	id, _ := middleware.IdentityFrom(ctx)
	squares, err := h.svc.ClaimSquares(ctx.Request.Context(), boardID, id.UserID, req.Count)
	if err != nil {
		renderServiceErr(ctx, "HandleClaimSquares -> h.svc.ClaimSquares", err)
		return
	}

	ctx.JSON(http.StatusCreated, squares)
}

// HandleConfirmPayment godoc
// @Summary      Confirm a square payment
// @Description  Marks a PENDING square PAID. The last payment fills the board and runs the grid assignment. Admin only.
// @Tags         squares
// @Produce      json
// @Param        squareID  path      int  true  "Square ID"
// @Success      200       {object}  response.PaymentResponse
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Router       /squares/{squareID}/payment [post]
// @Security BearerAuth
func (h *BoardHandler) HandleConfirmPayment(ctx *gin.Context) {
	squareID, ok := parseID(ctx, "squareID")
	if !ok {
		return
	}

	square, err := h.svc.ConfirmPayment(ctx.Request.Context(), squareID)
	if err != nil {
		if square.ID == 0 {
			renderServiceErr(ctx, "HandleConfirmPayment -> h.svc.ConfirmPayment", err)
			return
		}

		// The payment itself committed.
		ctx.JSON(http.StatusOK, response.PaymentResponse{
			Square:          square,
			AssignmentError: response.FromDomain(err),
		})
		return
	}

	ctx.JSON(http.StatusOK, response.PaymentResponse{Square: square})
}

// HandleTriggerAssignment godoc
// @Summary      Run the grid assignment
// @Description  Assigns grid positions and axes on a FILLED board. Admin only.
// @Tags         boards
// @Produce      json
// @Param        boardID  path      int  true  "Board ID"
// @Success      200      {object}  service.AssignmentResult
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /boards/{boardID}/assignment [post]
// @Security BearerAuth
func (h *BoardHandler) HandleTriggerAssignment(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	result, err := h.svc.TriggerAssignment(ctx.Request.Context(), boardID)
	if err != nil {
		renderServiceErr(ctx, "HandleTriggerAssignment -> h.svc.TriggerAssignment", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleStartTournament godoc
// @Summary      Start the tournament
// @Description  Moves an ASSIGNED board to ACTIVE. Admin only.
// @Tags         boards
// @Produce      json
// @Param        boardID  path      int  true  "Board ID"
// @Success      200      {object}  domain.Board
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /boards/{boardID}/start [post]
// @Security BearerAuth
func (h *BoardHandler) HandleStartTournament(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	board, err := h.svc.StartTournament(ctx.Request.Context(), boardID)
	if err != nil {
		renderServiceErr(ctx, "HandleStartTournament -> h.svc.StartTournament", err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// HandleEndTournament godoc
// @Summary      End the tournament
// @Description  Moves an ACTIVE board to COMPLETED. Admin only.
// @Tags         boards
// @Produce      json
// @Param        boardID  path      int  true  "Board ID"
// @Success      200      {object}  domain.Board
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /boards/{boardID}/end [post]
// @Security BearerAuth
func (h *BoardHandler) HandleEndTournament(ctx *gin.Context) {
	boardID, ok := parseID(ctx, "boardID")
	if !ok {
		return
	}

	board, err := h.svc.EndTournament(ctx.Request.Context(), boardID)
	if err != nil {
		renderServiceErr(ctx, "HandleEndTournament -> h.svc.EndTournament", err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}
