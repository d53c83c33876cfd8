package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/cuotacontrol/cuotacontrol-api/handlers"
	"github.com/cuotacontrol/cuotacontrol-api/services"
)

// SetupAuthRoutes registra las rutas públicas de autenticación.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
}

// SetupUserRoutes registra las rutas protegidas de la cuenta.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
	rg.DELETE("/user/account", userHandler.DeleteAccount)
}

// SetupRecordRoutes registra el CRUD de las colecciones del owner. Todas las
// escrituras notifican por WebSocket para que los clientes refresquen.
func SetupRecordRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	budgetService := services.NewBudgetService(db)

	people := &handlers.PeopleHandler{DB: db, Budget: budgetService, WS: ws}
	rg.GET("/people", people.List)
	rg.POST("/people", people.Create)
	rg.PUT("/people/:id", people.Update)
	rg.DELETE("/people/:id", people.Delete)

	cards := &handlers.CardsHandler{DB: db, Budget: budgetService, WS: ws}
	rg.GET("/cards", cards.List)
	rg.POST("/cards", cards.Create)
	rg.PUT("/cards/:id", cards.Update)
	rg.DELETE("/cards/:id", cards.Delete)

	purchases := &handlers.PurchasesHandler{DB: db, Budget: budgetService, WS: ws}
	rg.GET("/purchases", purchases.List)
	rg.GET("/purchases/export", purchases.Export)
	rg.POST("/purchases", purchases.Create)
	rg.PUT("/purchases/:id", purchases.Update)
	rg.DELETE("/purchases/:id", purchases.Delete)
	rg.POST("/purchases/:id/progress", purchases.Progress)

	expenses := &handlers.ExpensesHandler{DB: db, Budget: budgetService, WS: ws}
	rg.GET("/expenses", expenses.List)
	rg.POST("/expenses", expenses.Create)
	rg.PUT("/expenses/:id", expenses.Update)
	rg.DELETE("/expenses/:id", expenses.Delete)

	income := &handlers.IncomeHandler{DB: db, Budget: budgetService, WS: ws}
	rg.GET("/income/:month", income.Get)
	rg.PUT("/income", income.Upsert)
}

// SetupDashboardRoutes registra los endpoints de cálculo de presupuesto.
func SetupDashboardRoutes(rg *gin.RouterGroup, db *sql.DB) {
	dashboard := &handlers.DashboardHandler{Budget: services.NewBudgetService(db)}

	rg.GET("/dashboard/summary", dashboard.Summary)
	rg.GET("/dashboard/cards", dashboard.CardBreakdown)
}
