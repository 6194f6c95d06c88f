package handlers

import (
	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	questionHandler *QuestionHandler
	testHandler     *TestHandler
	studentHandler  *StudentHandler
	tokenParser     TokenParser
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Question(), serviceManager.ImportExport(), logger),
		testHandler:     NewTestHandler(serviceManager.Catalog(), serviceManager.Submission(), logger),
		studentHandler:  NewStudentHandler(serviceManager.Student(), serviceManager.ImportExport(), logger),
		tokenParser:     serviceManager.Auth(),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	api.Use(RequestContext())
	{
		// Public routes
		api.POST("/register", hm.authHandler.Register)
		api.POST("/login", hm.authHandler.Login)

		public := api.Group("/public")
		{
			public.GET("/tests", hm.testHandler.ListTests)
			public.GET("/questions", hm.questionHandler.ListQuestions)
		}

		// Authenticated routes
		user := api.Group("")
		user.Use(AuthMiddleware(hm.tokenParser))
		{
			user.POST("/change-password", hm.authHandler.ChangePassword)
			user.GET("/user/profile", hm.authHandler.Profile)
			user.GET("/tests", hm.testHandler.ListTests)
			user.GET("/questions", hm.questionHandler.ListQuestions)
			user.POST("/submit-test", hm.testHandler.SubmitTest)
		}

		// Question bank management
		questions := api.Group("/questions")
		questions.Use(AuthMiddleware(hm.tokenParser), AdminMiddleware())
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.POST("/import", hm.questionHandler.ImportQuestions)
			questions.GET("/export", hm.questionHandler.ExportQuestions)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		// Student administration
		students := api.Group("/admin/students")
		students.Use(AuthMiddleware(hm.tokenParser), AdminMiddleware())
		{
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/search", hm.studentHandler.SearchStudents)
			students.GET("/export", hm.studentHandler.ExportResults)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)
			students.POST("/:id/reset-assessment", hm.studentHandler.ResetAssessment)
		}
	}
}
