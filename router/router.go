package router

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"supasocial/controller"
	"supasocial/dao/backend"
	"supasocial/docs"
	"supasocial/logger"
	"supasocial/middleware"
	"supasocial/models"
	"supasocial/templates"
)

// ObjectSource serves stored blobs when the bucket lives in process memory.
type ObjectSource interface {
	Object(path string) (*models.ImageFile, bool)
}

type Options struct {
	Auth    backend.Auth
	Objects ObjectSource // nil unless the memory storage driver is used
	// ObjectsPath is the prefix Objects are served under.
	ObjectsPath string
}

var router *gin.Engine

func Init(h *controller.Handler, opts Options) {
	if !viper.GetBool("server.develop_mode") {
		gin.SetMode(gin.ReleaseMode)
	}
	router = New(h, opts)
}

// New builds the engine. Settings are read here and nowhere below.
func New(h *controller.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(templates.New())
	r.Use(
		logger.GinLogger(),
		logger.GinRecovery(true),
		middleware.RequestID(),
		middleware.CORF(viper.GetStringSlice("server.cors_origins")...),
		middleware.Session(opts.Auth, middleware.SessionConfig{
			CookieName: viper.GetString("session.cookie_name"),
			Secure:     viper.GetBool("session.secure_cookie"),
			TTL:        time.Duration(viper.GetInt64("session.ttl")) * time.Second,
		}),
	)

	/* Pages */
	r.GET("/", h.HomePageHandler)
	r.GET("/create", h.CreatePostPageHandler)
	r.POST("/create", h.CreatePostHandler)
	r.GET("/post/:post_id", h.PostDetailPageHandler)
	r.POST("/post/:post_id/vote", h.VoteHandler)
	r.POST("/post/:post_id/comments", h.CommentHandler)
	r.GET("/communities", h.CommunityListPageHandler)
	r.GET("/community/:id", h.CommunityPageHandler)

	/* Auth */
	authGrp := r.Group("/auth")
	authGrp.POST("/signin", h.SignInHandler)
	authGrp.GET("/callback", h.OAuthCallbackHandler)
	authGrp.POST("/signout", h.SignOutHandler)
	r.GET("/session/events", h.SessionEventsHandler)

	if opts.Objects != nil {
		prefix := strings.TrimRight(opts.ObjectsPath, "/")
		r.GET(prefix+"/*key", serveObject(opts.Objects))
	}

	/* Swagger */
	if viper.GetBool("service.swagger.enable") {
		docs.SwaggerInfo.BasePath = "/api/v1"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	v1 := r.Group("/api/v1")

	/* Session */
	v1.GET("/session", h.SessionHandler)
	v1.POST("/session/signin", h.SignInURLHandler)

	/* Community */
	v1.GET("/community/list", h.CommunityListHandler)
	v1.GET("/community/:id", h.CommunityPostsHandler)

	/* Post */
	postGrp := v1.Group("/post")
	postGrp.GET("/list", h.PostListHandler)
	postGrp.GET("/:post_id", h.PostDetailHandler)
	postGrp.GET("/:post_id/comments", h.CommentListHandler)
	postGrp.POST("/:post_id/vote", middleware.NeedLogin(), h.VoteAPIHandler)
	postGrp.POST("/:post_id/comments", middleware.NeedLogin(), h.CreateCommentHandler)

	return r
}

func serveObject(src ObjectSource) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		f, ok := src.Object(strings.TrimPrefix(ctx.Param("key"), "/"))
		if !ok {
			ctx.Status(http.StatusNotFound)
			return
		}
		contentType := f.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(f.Data)
		}
		ctx.Data(http.StatusOK, contentType, f.Data)
	}
}

func GetServer() *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", viper.GetString("server.ip"), viper.GetInt("server.port")),
		Handler: router,
	}
}
