package api

import (
	"context"

	"newsbrief/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ArticleService is what the HTTP layer needs from the pipeline.
type ArticleService interface {
	Create(ctx context.Context, rawURL string) (*types.ArticleSummary, error)
	List(ctx context.Context) ([]types.ArticleSummary, error)
	Delete(ctx context.Context, rawURL string) (bool, error)
	Ping(ctx context.Context) error
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(svc ArticleService, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(cors.New(corsConfig(corsOrigins)))

	// Register resource routers
	RegisterArticleRoutes(r, svc)
	RegisterHealthRoutes(r, svc)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
