package fitnesstracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/goal/goalcreate"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/goal/goallist"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/goal/goalprogress"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/goal/goalread"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/goal/goalremove"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/goal/goalstatus"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/foodcreate"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/foodsearch"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/mealcreate"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/mealitemadd"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/meallist"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/mealread"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/mealremove"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/meal/mealsummary"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/password"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/preferences"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/profileread"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/user/profileupdate"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workout/exerciseadd"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workout/exercisesearch"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workout/workoutcreate"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workout/workoutlist"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workout/workoutread"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/handlers/workout/workoutremove"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/metrics"
)

// Services: сервисы, которые обслуживают маршруты API.
type Services struct {
	Auth     AuthService
	Users    UserService
	Meals    MealService
	Workouts WorkoutService
	Goals    GoalService
	DB       health.Pinger
}

// AuthService объединяет операции учётных записей и проверку токенов.
type AuthService interface {
	middlewarectx.Authenticator
	register.Service
	login.Service
	me.Service
}

type UserService interface {
	profileread.Service
	profileupdate.Service
	preferences.Service
	password.Service
}

type MealService interface {
	meallist.Service
	mealcreate.Service
	mealread.Service
	mealitemadd.Service
	mealremove.Service
	mealsummary.Service
	foodsearch.Service
	foodcreate.Service
}

type WorkoutService interface {
	workoutlist.Service
	workoutcreate.Service
	workoutread.Service
	exerciseadd.Service
	workoutremove.Service
	exercisesearch.Service
}

type GoalService interface {
	goallist.Service
	goalcreate.Service
	goalread.Service
	goalprogress.Service
	goalstatus.Service
	goalremove.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
	)

	r.Get("/health", health.New(logger, s.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	auth := middlewarectx.Auth(s.Auth, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
			r.With(auth).Get("/me", me.New(logger, s.Auth).ServeHTTP)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(auth)
			r.Get("/profile", profileread.New(logger, s.Users).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, s.Users).ServeHTTP)
			r.Put("/preferences", preferences.New(logger, s.Users).ServeHTTP)
			r.Put("/password", password.New(logger, s.Users).ServeHTTP)
		})

		r.Route("/meals", func(r chi.Router) {
			// Поиск продуктов доступен без токена; с токеном в выдачу
			// попадают и собственные продукты пользователя.
			r.With(middlewarectx.OptionalAuth(s.Auth, logger)).
				Get("/foods/search", foodsearch.New(logger, s.Meals).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/foods", foodcreate.New(logger, s.Meals).ServeHTTP)
				r.Get("/summary/{date}", mealsummary.New(logger, s.Meals).ServeHTTP)
				r.Get("/", meallist.New(logger, s.Meals).ServeHTTP)
				r.Post("/", mealcreate.New(logger, s.Meals).ServeHTTP)
				r.Get("/{id}", mealread.New(logger, s.Meals).ServeHTTP)
				r.Delete("/{id}", mealremove.New(logger, s.Meals).ServeHTTP)
				r.Post("/{id}/items", mealitemadd.New(logger, s.Meals).ServeHTTP)
			})
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/exercises/search", exercisesearch.New(logger, s.Workouts).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/", workoutlist.New(logger, s.Workouts).ServeHTTP)
				r.Post("/", workoutcreate.New(logger, s.Workouts).ServeHTTP)
				r.Get("/{id}", workoutread.New(logger, s.Workouts).ServeHTTP)
				r.Delete("/{id}", workoutremove.New(logger, s.Workouts).ServeHTTP)
				r.Post("/{id}/exercises", exerciseadd.New(logger, s.Workouts).ServeHTTP)
			})
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", goallist.New(logger, s.Goals).ServeHTTP)
			r.Post("/", goalcreate.New(logger, s.Goals).ServeHTTP)
			r.Get("/{id}", goalread.New(logger, s.Goals).ServeHTTP)
			r.Delete("/{id}", goalremove.New(logger, s.Goals).ServeHTTP)
			r.Post("/{id}/progress", goalprogress.New(logger, s.Goals).ServeHTTP)
			r.Put("/{id}/status", goalstatus.New(logger, s.Goals).ServeHTTP)
		})
	})
}
