package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/recipe-api/internal/middlewares"
)

// UserService is everything the user routes need.
type UserService interface {
	UserCreator
	UserManager
}

// AuthService is everything the token routes need.
type AuthService interface {
	TokenIssuer
	TokenRevoker
}

// RecipeService is everything the recipe routes need.
type RecipeService interface {
	RecipeLister
	RecipeCreator
	RecipeGetter
	RecipeUpdater
	RecipeDeleter
	RecipeImageUploader
}

// RouterConfig wires services into the route table.
type RouterConfig struct {
	Auth        AuthService
	Users       UserService
	UserDetails UserDetailsManager
	Recipes     RecipeService
	Tags        NamedManager
	Ingredients NamedManager

	// RequireAuth guards every owner-scoped route.
	RequireAuth func(http.Handler) http.Handler

	// MediaRoot is served under MediaURL when set.
	MediaRoot string
	MediaURL  string

	// SwaggerURL is the doc.json location used by the swagger UI.
	SwaggerURL string
}

// NewRouter builds the HTTP route table.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check", NewHealthCheckHandler())

		r.Route("/user", func(r chi.Router) {
			r.Post("/create", NewCreateUserHandler(cfg.Users))
			r.Post("/token", NewTokenHandler(cfg.Auth))

			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireAuth)

				r.Post("/logout", NewLogoutHandler(cfg.Auth))

				r.Get("/me", NewGetMeHandler(cfg.Users))
				r.Put("/me", NewUpdateMeHandler(cfg.Users, false))
				r.Patch("/me", NewUpdateMeHandler(cfg.Users, true))
				r.Delete("/me", NewDeleteMeHandler(cfg.Users))

				r.Post("/details", NewUpsertUserDetailsHandler(cfg.UserDetails))
				r.Get("/details/me", NewGetUserDetailsHandler(cfg.UserDetails))
				r.Patch("/details/me", NewPatchUserDetailsHandler(cfg.UserDetails))
			})
		})

		r.Route("/recipe", func(r chi.Router) {
			r.Use(cfg.RequireAuth)

			r.Get("/recipes", NewListRecipesHandler(cfg.Recipes))
			r.Post("/recipes", NewCreateRecipeHandler(cfg.Recipes))
			r.Get("/recipes/{id}", NewGetRecipeHandler(cfg.Recipes))
			r.Put("/recipes/{id}", NewUpdateRecipeHandler(cfg.Recipes, false))
			r.Patch("/recipes/{id}", NewUpdateRecipeHandler(cfg.Recipes, true))
			r.Delete("/recipes/{id}", NewDeleteRecipeHandler(cfg.Recipes))
			r.Post("/recipes/{id}/upload-image", NewUploadRecipeImageHandler(cfg.Recipes))

			mountNamed(r, "/tags", cfg.Tags)
			mountNamed(r, "/ingredients", cfg.Ingredients)
		})
	})

	if cfg.MediaRoot != "" {
		prefix := "/" + strings.Trim(cfg.MediaURL, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.MediaRoot))))
	}

	if cfg.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))
	}

	return r
}

func mountNamed(r chi.Router, path string, svc NamedManager) {
	r.Get(path, NewListNamedHandler(svc))
	r.Put(path+"/{id}", NewUpdateNamedHandler(svc, false))
	r.Patch(path+"/{id}", NewUpdateNamedHandler(svc, true))
	r.Delete(path+"/{id}", NewDeleteNamedHandler(svc))
}
