// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/feed"
	healthfeature "github.com/chroniclehq/chronicle/internal/app/features/health"
	imagesfeature "github.com/chroniclehq/chronicle/internal/app/features/images"
	postsfeature "github.com/chroniclehq/chronicle/internal/app/features/posts"
	profilefeature "github.com/chroniclehq/chronicle/internal/app/features/profile"
	projectsfeature "github.com/chroniclehq/chronicle/internal/app/features/projects"
	snippetsfeature "github.com/chroniclehq/chronicle/internal/app/features/snippets"
	subsfeature "github.com/chroniclehq/chronicle/internal/app/features/subscriptions"
	usersearchfeature "github.com/chroniclehq/chronicle/internal/app/features/usersearch"
	"github.com/chroniclehq/chronicle/internal/app/linkage"
	imagestore "github.com/chroniclehq/chronicle/internal/app/store/images"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	substore "github.com/chroniclehq/chronicle/internal/app/store/subscriptions"
	tagstore "github.com/chroniclehq/chronicle/internal/app/store/tags"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
	"github.com/chroniclehq/chronicle/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It builds the store layer once, wires
// the cross-cutting services (linkage manager, feed aggregator) on top,
// and mounts one feature router per API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	projects := projectstore.New(db)
	snippets := snippetstore.New(db)
	posts := poststore.New(db)
	images := imagestore.New(db)
	tags := tagstore.New(db)
	subs := substore.New(db)

	lm := &linkage.Manager{
		Snippets: snippets,
		Images:   images,
		Storage:  deps.Storage,
		Log:      logger,
	}
	agg := &feed.Aggregator{
		Snippets: snippets,
		Posts:    posts,
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(db, logger)
	r.Get("/health", healthHandler.HandleHealth)

	// Uploaded images served from local storage
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Content
	postsHandler := postsfeature.NewHandler(posts, projects, tags, users, lm, logger)
	r.Mount("/post", postsfeature.Routes(postsHandler))

	snippetsHandler := snippetsfeature.NewHandler(snippets, projects, tags, logger)
	r.Mount("/snippet", snippetsfeature.Routes(snippetsHandler))

	projectsHandler := projectsfeature.NewHandler(projects, posts, snippets, subs, users, agg, lm, logger)
	r.Mount("/project", projectsfeature.Routes(projectsHandler))

	// Subscriptions
	subsHandler := subsfeature.NewHandler(subs, projects, logger)
	r.Mount("/subscription", subsfeature.Routes(subsHandler))

	// Profiles
	profileHandler := profilefeature.NewHandler(users, projects, posts, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	// Collaborator picker
	searchHandler := usersearchfeature.NewHandler(users, logger)
	r.Get("/search/user", searchHandler.HandleSearch)

	// Uploads
	imagesHandler := imagesfeature.NewHandler(images, deps.Storage, logger)
	r.Post("/image", imagesHandler.HandleUpload)

	return r, nil
}
