package internal

import (
	"activitybot/internal/controllers"
	"activitybot/internal/providers"
	"activitybot/internal/structures"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, adminController *controllers.AdminController, conf *structures.Config, logger providers.Logger) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/events", http.HandlerFunc(apiController.ReceiveEvent))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/activity", http.HandlerFunc(apiController.GetActivity))
	routers.Get("/leaderboard", http.HandlerFunc(apiController.GetLeaderboard))
	routers.Get("/profile", http.HandlerFunc(apiController.GetProfile))

	admin := routers.With(providers.AdminTokenMiddleware(conf.Admin.Token, logger))
	admin.Post("/admin/backup", http.HandlerFunc(adminController.Backup))
	admin.Post("/admin/cleanup", http.HandlerFunc(adminController.Cleanup))
	admin.Get("/admin/stats", http.HandlerFunc(adminController.Stats))
	admin.Post("/admin/export", http.HandlerFunc(adminController.Export))
	admin.Post("/admin/tracking", http.HandlerFunc(adminController.Tracking))
	return routers
}
