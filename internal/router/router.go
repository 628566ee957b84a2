package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/boardflow/backend/api/handler"
)

type Handlers struct {
	Board     *apiHandler.BoardHandler
	Column    *apiHandler.ColumnHandler
	Task      *apiHandler.TaskHandler
	Comment   *apiHandler.CommentHandler
	Checklist *apiHandler.ChecklistHandler
	Label     *apiHandler.LabelHandler
	Member    *apiHandler.MemberHandler
	Activity  *apiHandler.ActivityHandler
	Stream    *apiHandler.StreamHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Stream connections authenticate out of band: the channel name is
	// the only capability a subscriber needs.
	r.GET("/stream", handlers.Stream.Subscribe)

	// Boards
	r.GET("/api/v1/boards", authMiddleware(handlers.Board.GetBoards))
	r.POST("/api/v1/boards", authMiddleware(handlers.Board.CreateBoard))
	r.GET("/api/v1/boards/{id}", authMiddleware(handlers.Board.GetBoard))
	r.PUT("/api/v1/boards/{id}", authMiddleware(handlers.Board.UpdateBoard))
	r.DELETE("/api/v1/boards/{id}", authMiddleware(handlers.Board.DeleteBoard))
	r.GET("/api/v1/boards/{id}/presence", authMiddleware(handlers.Board.GetPresence))

	// Activity and notifications
	r.GET("/api/v1/boards/{id}/activity", authMiddleware(handlers.Activity.GetActivity))
	r.GET("/api/v1/boards/{id}/notifications", authMiddleware(handlers.Activity.GetNotifications))
	r.DELETE("/api/v1/boards/{id}/notifications", authMiddleware(handlers.Activity.ClearNotifications))
	r.PUT("/api/v1/notifications/{id}/read", authMiddleware(handlers.Activity.MarkNotificationRead))

	// Columns
	r.POST("/api/v1/columns", authMiddleware(handlers.Column.CreateColumn))
	r.PUT("/api/v1/columns/{id}", authMiddleware(handlers.Column.UpdateColumn))
	r.PUT("/api/v1/columns/{id}/position", authMiddleware(handlers.Column.MoveColumn))
	r.DELETE("/api/v1/columns/{id}", authMiddleware(handlers.Column.DeleteColumn))

	// Tasks
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.PUT("/api/v1/tasks/{id}/move", authMiddleware(handlers.Task.MoveTask))
	r.PUT("/api/v1/tasks/{id}/assignees", authMiddleware(handlers.Task.SetAssignees))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	// Comments
	r.GET("/api/v1/tasks/{id}/comments", authMiddleware(handlers.Comment.GetComments))
	r.POST("/api/v1/tasks/{id}/comments", authMiddleware(handlers.Comment.CreateComment))
	r.DELETE("/api/v1/comments/{id}", authMiddleware(handlers.Comment.DeleteComment))

	// Checklist
	r.GET("/api/v1/tasks/{id}/checklist", authMiddleware(handlers.Checklist.GetItems))
	r.POST("/api/v1/tasks/{id}/checklist", authMiddleware(handlers.Checklist.CreateItem))
	r.PUT("/api/v1/checklist/{id}", authMiddleware(handlers.Checklist.UpdateItem))
	r.DELETE("/api/v1/checklist/{id}", authMiddleware(handlers.Checklist.DeleteItem))

	// Labels
	r.GET("/api/v1/boards/{id}/labels", authMiddleware(handlers.Label.GetLabels))
	r.POST("/api/v1/boards/{id}/labels", authMiddleware(handlers.Label.CreateLabel))
	r.PUT("/api/v1/labels/{id}", authMiddleware(handlers.Label.UpdateLabel))
	r.DELETE("/api/v1/labels/{id}", authMiddleware(handlers.Label.DeleteLabel))

	// Members
	r.GET("/api/v1/boards/{id}/members", authMiddleware(handlers.Member.GetMembers))
	r.POST("/api/v1/boards/{id}/members", authMiddleware(handlers.Member.CreateMember))
	r.PUT("/api/v1/members/{id}", authMiddleware(handlers.Member.UpdateMember))
	r.DELETE("/api/v1/members/{id}", authMiddleware(handlers.Member.DeleteMember))

	return r
}
