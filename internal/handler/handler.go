package handler

import (
	"errors"
	"strconv"

	"tuitionportal/internal/config"
	"tuitionportal/internal/repository"
	"tuitionportal/internal/service"
	"tuitionportal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	authService    *service.AuthService
	accountService *service.AccountService
	paymentService *service.PaymentService
	gradeService   *service.GradeService
}

// NewHandler 创建处理器实例
func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Handler {
	return &Handler{
		authService:    service.NewAuthService(db, cfg),
		accountService: service.NewAccountService(db, cfg),
		paymentService: service.NewPaymentService(db, rdb, cfg),
		gradeService:   service.NewGradeService(db, cfg),
	}
}

// currentStudentID 从凭证中间件取当前学生ID
func currentStudentID(c *gin.Context) int64 {
	return c.GetInt64(ContextStudentID)
}

// ============================================================
// 登录相关接口
// ============================================================

// LoginRequest 登录请求
type LoginRequest struct {
	StudentNumber string `json:"student_number" binding:"required"`
	Password      string `json:"password" binding:"required"`
}

// Login 学号+密码登录
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.StudentNumber, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BusinessError(c, response.CodeInvalidCredentials, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// ============================================================
// 账户相关接口
// ============================================================

// GetAccount 查询当前学期账户（对账单摘要）
// GET /api/v1/account
func (h *Handler) GetAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), currentStudentID(c))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			response.BusinessError(c, response.CodeAccountNotFound, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, account)
}

// ListTransactions 查询账单流水
// GET /api/v1/account/transactions?page=1&page_size=20
func (h *Handler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	transactions, total, err := h.accountService.ListTransactions(c.Request.Context(), currentStudentID(c), page, pageSize)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"list":      transactions,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ============================================================
// 缴费相关接口
// ============================================================

// ListPaymentMethods 查询启用中的缴费渠道
// GET /api/v1/payment/methods
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.paymentService.ListMethods(c.Request.Context())
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, methods)
}

// PreviewPaymentRequest 缴费预览请求
type PreviewPaymentRequest struct {
	MethodCode string          `json:"method_code" binding:"required"`
	BaseAmount decimal.Decimal `json:"base_amount" binding:"required"`
}

// PreviewPayment 缴费预览，只算费用不落库
// POST /api/v1/payment/preview
func (h *Handler) PreviewPayment(c *gin.Context) {
	var req PreviewPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	breakdown, err := h.paymentService.PreviewPayment(c.Request.Context(), req.MethodCode, req.BaseAmount)
	if err != nil {
		h.paymentError(c, err)
		return
	}

	response.Success(c, breakdown)
}

// SubmitPaymentRequest 缴费请求
type SubmitPaymentRequest struct {
	MethodCode string          `json:"method_code" binding:"required"` // 缴费渠道代码
	Amount     decimal.Decimal `json:"amount" binding:"required"`      // 缴费金额
	Reference  string          `json:"reference"`                      // 缴费参考号，缺省时系统合成
}

// SubmitPayment 提交缴费
// POST /api/v1/payment/execute
func (h *Handler) SubmitPayment(c *gin.Context) {
	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), currentStudentID(c), req.MethodCode, req.Amount, req.Reference)
	if err != nil {
		h.paymentError(c, err)
		return
	}

	response.Success(c, result)
}

// paymentError 缴费路径的错误分类映射
func (h *Handler) paymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		response.BusinessError(c, response.CodeInvalidAmount, err.Error())
	case errors.Is(err, service.ErrUnknownMethod):
		response.BusinessError(c, response.CodeUnknownMethod, err.Error())
	case errors.Is(err, service.ErrDuplicateReference):
		response.ParamError(c, err.Error())
	case errors.Is(err, repository.ErrAccountNotFound):
		response.BusinessError(c, response.CodeAccountNotFound, err.Error())
	default:
		response.BusinessError(c, response.CodePaymentFailed, err.Error())
	}
}

// ============================================================
// 成绩相关接口
// ============================================================

// GetGrades 查询成绩（prelim 缴清后可见）
// GET /api/v1/grades
func (h *Handler) GetGrades(c *gin.Context) {
	grades, err := h.gradeService.GetStudentGrades(c.Request.Context(), currentStudentID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGradesForbidden):
			response.BusinessError(c, response.CodeGradesForbidden, err.Error())
		case errors.Is(err, repository.ErrAccountNotFound):
			response.BusinessError(c, response.CodeAccountNotFound, err.Error())
		default:
			response.ServerError(c, err.Error())
		}
		return
	}

	response.Success(c, grades)
}
