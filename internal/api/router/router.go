package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/config"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/api/handler"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/api/middleware"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/jwt"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 公开签署链接（匿名，限速防滥用）
		v1.POST("/public/documents/:id/signatures",
			middleware.RateLimit(rdb, 20, time.Minute), h.Document.SubmitSignature)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块（管理员）
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("admin", "manager"), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth("admin", "manager"), h.User.GetUser)
				users.POST("", middleware.RoleAuth("admin"), h.User.CreateUser)
				users.PUT("/:id", middleware.RoleAuth("admin"), h.User.UpdateUser)
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.DeleteUser)
			}

			// 客户模块
			clients := authorized.Group("/clients")
			{
				clients.GET("", h.Client.ListClients)
				clients.GET("/:id", h.Client.GetClient)
				clients.POST("", middleware.RoleAuth("admin", "manager"), h.Client.CreateClient)
				clients.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Client.UpdateClient)
				clients.DELETE("/:id", middleware.RoleAuth("admin"), h.Client.DeleteClient)
			}

			// 劳务公司模块
			companies := authorized.Group("/companies")
			{
				companies.GET("", h.Company.ListCompanies)
				companies.GET("/:id", h.Company.GetCompany)
				companies.POST("", middleware.RoleAuth("admin"), h.Company.CreateCompany)
				companies.PUT("/:id", middleware.RoleAuth("admin"), h.Company.UpdateCompany)
				companies.DELETE("/:id", middleware.RoleAuth("admin"), h.Company.DeleteCompany)
			}

			// 工作地点模块
			locations := authorized.Group("/locations")
			{
				locations.GET("", h.Company.ListLocations)
				locations.GET("/:id", h.Company.GetLocation)
				locations.POST("", middleware.RoleAuth("admin"), h.Company.CreateLocation)
				locations.PUT("/:id", middleware.RoleAuth("admin"), h.Company.UpdateLocation)
				locations.DELETE("/:id", middleware.RoleAuth("admin"), h.Company.DeleteLocation)
			}

			// 任务类型模块
			taskTypes := authorized.Group("/task-types")
			{
				taskTypes.GET("", h.Catalog.ListTaskTypes)
				taskTypes.GET("/:id", h.Catalog.GetTaskType)
				taskTypes.POST("", middleware.RoleAuth("admin"), h.Catalog.CreateTaskType)
				taskTypes.PUT("/:id", middleware.RoleAuth("admin"), h.Catalog.UpdateTaskType)
				taskTypes.DELETE("/:id", middleware.RoleAuth("admin"), h.Catalog.DeleteTaskType)
			}

			// 职务模块
			duties := authorized.Group("/duties")
			{
				duties.GET("", h.Catalog.ListDuties)
				duties.GET("/:id", h.Catalog.GetDuty)
				duties.POST("", middleware.RoleAuth("admin"), h.Catalog.CreateDuty)
				duties.PUT("/:id", middleware.RoleAuth("admin"), h.Catalog.UpdateDuty)
				duties.DELETE("/:id", middleware.RoleAuth("admin"), h.Catalog.DeleteDuty)
			}

			// 活动与工作日模块
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.ListEvents)
				events.GET("/:id", h.Event.GetEvent)
				events.POST("", middleware.RoleAuth("admin", "manager"), h.Event.CreateEvent)
				events.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Event.UpdateEvent)
				events.DELETE("/:id", middleware.RoleAuth("admin"), h.Event.DeleteEvent)
				events.GET("/:id/workdays", h.Event.ListWorkdays)
				events.POST("/:id/workdays", middleware.RoleAuth("admin", "manager"), h.Event.CreateWorkday)
			}
			authorized.DELETE("/workdays/:id", middleware.RoleAuth("admin", "manager"), h.Event.DeleteWorkday)

			// 排班任务模块
			authorized.GET("/workdays/:id/assignments", h.Assignment.ListAssignments)
			authorized.POST("/workdays/:id/assignments", middleware.RoleAuth("admin", "manager"), h.Assignment.CreateAssignment)
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Assignment.UpdateAssignment)
				assignments.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Assignment.DeleteAssignment)
				// 实际工时：worker 仅能提交本人记录（Service 层鉴权）
				assignments.GET("/:id/time-entries", h.Assignment.ListTimeEntries)
				assignments.POST("/:id/time-entries", h.Assignment.SubmitTimeEntry)
			}
			authorized.DELETE("/time-entries/:id", h.Assignment.DeleteTimeEntry)

			// 工时报表模块（管理员/经理）
			reports := authorized.Group("/reports", middleware.RoleAuth("admin", "manager"))
			{
				reports.GET("/cliente", h.Report.ClientReport)
				reports.GET("/evento", h.Report.EventReport)
				reports.GET("/mansione", h.Report.DutyReport)
				reports.GET("/azienda", h.Report.CompanyReport)
				reports.GET("/dipendente", h.Report.EmployeeReport)
			}

			// 报表导出模块
			export := authorized.Group("/export")
			{
				export.GET("/reports/:type", middleware.RoleAuth("admin", "manager"), h.Export.ExportReport)
			}

			// 个人排班日历
			calendar := authorized.Group("/calendar")
			{
				calendar.GET("/me", h.Calendar.MyCalendar)
				calendar.GET("/users/:id", middleware.RoleAuth("admin", "manager"), h.Calendar.UserCalendar)
			}

			// 文档与签名模块
			templates := authorized.Group("/document-templates")
			{
				templates.GET("", h.Document.ListTemplates)
				templates.GET("/:id", h.Document.GetTemplate)
				templates.POST("", middleware.RoleAuth("admin", "manager"), h.Document.CreateTemplate)
				templates.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Document.UpdateTemplate)
				templates.DELETE("/:id", middleware.RoleAuth("admin"), h.Document.DeleteTemplate)
			}
			documents := authorized.Group("/documents")
			{
				documents.GET("", h.Document.ListDocuments)
				documents.GET("/:id", h.Document.GetDocument)
				documents.POST("", middleware.RoleAuth("admin", "manager"), h.Document.CreateDocument)
				documents.POST("/:id/signatures", h.Document.SubmitSignature)
			}
		}
	}

	return r
}
