package router

import (
	"agrilink/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/request-otp", handler.RequestOTP)
	auth.POST("/verify-otp", handler.VerifyOTP)
	auth.POST("/reset-pin", handler.ResetPin)

	auth.POST("/change-pin", handler.ChangePin, authRequired)
	auth.GET("/me", handler.Me, authRequired)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/role/:role", handler.GetUsersByRole, authRequired)
	users.GET("/:id", handler.GetUserByID, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/category/:category", handler.GetProductsByCategory)
	products.GET("/user/:userId", handler.GetProductsBySeller, authRequired)
	products.GET("/:id", handler.GetProductByID)

	products.POST("", handler.CreateProduct, authRequired)
	products.PUT("/:id", handler.UpdateProduct, authRequired)
	products.DELETE("/:id", handler.DeleteProduct, authRequired)

	api.GET("/admin/products", handler.GetAllProductsAdmin, authRequired, adminOnly)
}

func SetupForumRoutes(api *echo.Group, handler *rest.ForumHandler, authRequired echo.MiddlewareFunc) {
	forums := api.Group("/forums")

	forums.GET("", handler.GetAllPosts)
	forums.GET("/category/:category", handler.GetPostsByCategory)
	forums.GET("/:id", handler.GetPostByID)

	forums.POST("", handler.CreatePost, authRequired)
	forums.PUT("/:id", handler.UpdatePost, authRequired)
	forums.DELETE("/:id", handler.DeletePost, authRequired)
	forums.POST("/:id/like", handler.ToggleLike, authRequired)
	forums.POST("/:id/report", handler.ReportPost, authRequired)
}

func SetupCommentRoutes(api *echo.Group, handler *rest.CommentHandler, authRequired echo.MiddlewareFunc) {
	comments := api.Group("/comments")

	comments.GET("/forum/:forumId", handler.GetCommentsByForum)

	comments.POST("", handler.CreateComment, authRequired)
	comments.PUT("/:id", handler.UpdateComment, authRequired)
	comments.DELETE("/:id", handler.DeleteComment, authRequired)
	comments.POST("/:id/like", handler.ToggleLike, authRequired)
	comments.POST("/:id/report", handler.ReportComment, authRequired)
}

func SetupLessonRoutes(api *echo.Group, handler *rest.LessonHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	lessons := api.Group("/lessons")

	lessons.GET("", handler.GetAllLessons)
	lessons.GET("/:id", handler.GetLessonByID)

	lessons.POST("", handler.CreateLesson, authRequired, adminOnly)
	lessons.PUT("/:id", handler.UpdateLesson, authRequired, adminOnly)
	lessons.DELETE("/:id", handler.DeleteLesson, authRequired, adminOnly)
}

func SetupNotificationRoutes(api *echo.Group, handler *rest.NotificationHandler, authRequired echo.MiddlewareFunc) {
	notifications := api.Group("/notifications", authRequired)

	notifications.GET("", handler.List)
	notifications.PUT("/read-all", handler.MarkAllRead)
	notifications.PUT("/:id/read", handler.MarkRead)
	notifications.DELETE("/:id", handler.Delete)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/dashboard", handler.GetDashboard)
	admin.GET("/reported-content", handler.GetReportedContent)
	admin.POST("/reported-content/:id", handler.ResolveReport)
}

func SetupUploadRoutes(api *echo.Group, handler *rest.UploadHandler, authRequired echo.MiddlewareFunc) {
	uploads := api.Group("/uploads", authRequired)

	uploads.POST("", handler.Upload)
	uploads.DELETE("/:publicId", handler.Delete)
}
