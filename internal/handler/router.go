package handler

import (
	"tuitionportal/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	// 设置 gin 为发布模式（减少日志输出）
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 注册中间件
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())

	// 创建处理器
	h := NewHandler(db, rdb, cfg)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 登录（无需凭证）
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
		}

		// 缴费渠道为参考数据，公开可查
		api.GET("/payment/methods", h.ListPaymentMethods)

		// 以下接口需要登录凭证
		authed := api.Group("")
		authed.Use(AuthMiddleware(cfg))
		{
			// 账户相关
			authed.GET("/account", h.GetAccount)
			authed.GET("/account/transactions", h.ListTransactions)

			// 缴费相关
			authed.POST("/payment/preview", h.PreviewPayment)
			authed.POST("/payment/execute", h.SubmitPayment)

			// 成绩相关
			authed.GET("/grades", h.GetGrades)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
