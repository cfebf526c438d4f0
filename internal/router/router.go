package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskdeck/backend/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Profile   *apiHandler.ProfileHandler
	Task      *apiHandler.TaskHandler
	Member    *apiHandler.MemberHandler
	Dashboard *apiHandler.DashboardHandler
	WorkLog   *apiHandler.WorkLogHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.GET("/api/v1/auth/sessions/{id}", handlers.Auth.GetSession)

	// Profile
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	// Tasks and progress replies
	r.GET("/api/v1/orgs/{org}/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/orgs/{org}/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/orgs/{org}/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.DELETE("/api/v1/orgs/{org}/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.PATCH("/api/v1/orgs/{org}/tasks/{id}/status", authMiddleware(handlers.Task.ChangeStatus))
	r.PATCH("/api/v1/orgs/{org}/tasks/{id}/assignee", authMiddleware(handlers.Task.Reassign))
	r.PATCH("/api/v1/orgs/{org}/tasks/{id}/expected-finish", authMiddleware(handlers.Task.SetExpectedFinish))
	r.GET("/api/v1/orgs/{org}/tasks/{id}/replies", authMiddleware(handlers.Task.GetReplies))
	r.POST("/api/v1/orgs/{org}/tasks/{id}/replies", authMiddleware(handlers.Task.CreateReply))
	r.PUT("/api/v1/orgs/{org}/replies/{id}", authMiddleware(handlers.Task.UpdateReply))
	r.DELETE("/api/v1/orgs/{org}/replies/{id}", authMiddleware(handlers.Task.DeleteReply))

	// Members
	r.GET("/api/v1/orgs/{org}/members", authMiddleware(handlers.Member.GetMembers))
	r.PATCH("/api/v1/orgs/{org}/members/{user}/role", authMiddleware(handlers.Member.SetRole))
	r.PATCH("/api/v1/orgs/{org}/members/{user}/active", authMiddleware(handlers.Member.SetActive))

	// Dashboard
	r.GET("/api/v1/orgs/{org}/dashboard", authMiddleware(handlers.Dashboard.GetOverview))

	// Work logs
	r.GET("/api/v1/orgs/{org}/worklogs", authMiddleware(handlers.WorkLog.GetWorkLogs))
	r.POST("/api/v1/orgs/{org}/worklogs", authMiddleware(handlers.WorkLog.SubmitWorkLog))
	r.PUT("/api/v1/orgs/{org}/worklogs/{id}", authMiddleware(handlers.WorkLog.EditWorkLog))
	r.POST("/api/v1/orgs/{org}/worklogs/{id}/review", authMiddleware(handlers.WorkLog.ReviewWorkLog))

	return r
}
