package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vietanh2810/squares-pool/docs"
	v1 "github.com/vietanh2810/squares-pool/internal/api/handler/v1"
	"github.com/vietanh2810/squares-pool/internal/api/handler/v1/response"
	"github.com/vietanh2810/squares-pool/internal/api/middleware"
	"github.com/vietanh2810/squares-pool/internal/broadcast"
	"github.com/vietanh2810/squares-pool/internal/config"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, svc v1.PoolService, events *broadcast.Broadcaster) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	boardHandler := v1.NewBoardHandler(svc)
	gameHandler := v1.NewGameHandler(svc)
	streamHandler := v1.NewStreamHandler(svc, events, conf.API.AllowedCORSDomains)
	s.MountHandlers(boardHandler, gameHandler, streamHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(boardHandler *v1.BoardHandler, gameHandler *v1.GameHandler, streamHandler *v1.StreamHandler) {
	const basePath = "/api/v1"

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/boards/:boardID", boardHandler.HandleGetBoard)
		authenticated.GET("/boards/:boardID/squares", boardHandler.HandleListSquares)
		authenticated.POST("/boards/:boardID/claims", boardHandler.HandleClaimSquares)
		authenticated.GET("/boards/:boardID/scoring", gameHandler.HandleGetScoringTable)
		authenticated.GET("/boards/:boardID/events", streamHandler.HandleEvents)
	}

	admin := authenticated.Group("", middleware.RequireAdmin())
	{
		admin.POST("/boards", boardHandler.HandleCreateBoard)
		admin.POST("/squares/:squareID/payment", boardHandler.HandleConfirmPayment)
		admin.POST("/boards/:boardID/assignment", boardHandler.HandleTriggerAssignment)
		admin.POST("/boards/:boardID/start", boardHandler.HandleStartTournament)
		admin.POST("/boards/:boardID/end", boardHandler.HandleEndTournament)
		admin.POST("/boards/:boardID/games", gameHandler.HandleCreateGame)
		admin.PUT("/games/:gameID/score", gameHandler.HandleUpdateScore)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.NoRoute(func(ctx *gin.Context) {
		response.RenderErr(ctx, response.ErrNotFound("route", "path", ctx.Request.URL.Path))
	})

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Squares Pool API"
	docs.SwaggerInfo.Description = "Bracket squares pool: claims, payments, grid assignment and game scoring."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
