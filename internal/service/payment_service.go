package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"tuitionportal/internal/config"
	"tuitionportal/internal/infrastructure/lock"
	"tuitionportal/internal/model"
	"tuitionportal/internal/repository"
	"tuitionportal/pkg/idgen"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount      = errors.New("缴费金额非法")
	ErrUnknownMethod      = errors.New("缴费渠道不存在或未启用")
	ErrDuplicateReference = errors.New("缴费参考号已存在")
)

type PaymentService struct {
	db              *gorm.DB
	redisClient     *redis.Client
	cfg             *config.Config
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	methodRepo      *repository.PaymentMethodRepository
	outboxRepo      *repository.OutboxRepository
}

func NewPaymentService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *PaymentService {
	return &PaymentService{
		db:              db,
		redisClient:     redisClient,
		cfg:             cfg,
		accountRepo:     repository.NewAccountRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		methodRepo:      repository.NewPaymentMethodRepository(db),
		outboxRepo:      repository.NewOutboxRepository(db),
	}
}

// ListMethods 查询启用中的缴费渠道
func (s *PaymentService) ListMethods(ctx context.Context) ([]*model.PaymentMethod, error) {
	return s.methodRepo.ListActive(ctx)
}

// PreviewPayment 缴费预览：按渠道费率计算费用明细，不落任何数据
// 纯计算，相同入参重复调用结果一致
func (s *PaymentService) PreviewPayment(ctx context.Context, methodCode string, baseAmount decimal.Decimal) (*model.FeeBreakdown, error) {
	if !baseAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	method, err := s.methodRepo.GetActiveByCode(ctx, methodCode)
	if err != nil {
		if errors.Is(err, repository.ErrMethodNotFound) {
			return nil, ErrUnknownMethod
		}
		return nil, fmt.Errorf("查询缴费渠道失败: %w", err)
	}

	breakdown := method.Calculate(baseAmount)
	return &breakdown, nil
}

type PaymentResult struct {
	TransactionNo    string               `json:"transaction_no"`
	PaymentReference string               `json:"payment_reference"`
	PrelimStatus     model.PaymentStatus  `json:"prelim_status"`
	ExamPermission   model.ExamPermission `json:"exam_permission"`
	RemainingBalance decimal.Decimal      `json:"remaining_balance"`
}

// ProcessPayment 执行缴费
//
// 【关键点】缴费是整个系统最核心的操作，需要保证：
// 1. 金额校验在任何落库之前完成，非法请求零副作用
// 2. 原子性：流水追加、账户余额与状态更新、回执写入必须同时成功或同时失败
// 3. 并发安全：按账户加分布式锁 + 事务内行锁，同一账户的缴费串行执行
func (s *PaymentService) ProcessPayment(ctx context.Context, studentID int64, methodCode string, amount decimal.Decimal, reference string) (*PaymentResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	// 渠道校验，未知渠道直接拒绝，零副作用
	method, err := s.methodRepo.GetActiveByCode(ctx, methodCode)
	if err != nil {
		if errors.Is(err, repository.ErrMethodNotFound) {
			return nil, ErrUnknownMethod
		}
		return nil, fmt.Errorf("查询缴费渠道失败: %w", err)
	}

	account, err := s.accountRepo.GetByStudent(ctx, studentID, s.cfg.Business.Semester, s.cfg.Business.AcademicYear)
	if err != nil {
		return nil, err
	}

	// 未提供参考号时由系统合成，合成值按账户+单调时钟保证唯一
	if reference == "" {
		reference = idgen.GeneratePaymentReference(account.ID)
	} else {
		existing, err := s.transactionRepo.GetByPaymentReference(ctx, reference)
		if err != nil {
			return nil, fmt.Errorf("查询缴费参考号失败: %w", err)
		}
		if existing != nil {
			return nil, ErrDuplicateReference
		}
	}

	// 按账户加锁，同一账户的缴费串行，不同账户互不影响
	payLock := lock.NewPayLock(s.redisClient, account.ID, reference)
	if err := payLock.Lock(ctx, 100*time.Millisecond, 30); err != nil {
		return nil, fmt.Errorf("系统繁忙，请稍后重试: %w", err)
	}
	defer payLock.Unlock(ctx)

	transactionNo := idgen.GenerateTransactionNo()
	overpaymentCap := decimal.NewFromFloat(s.cfg.Business.OverpaymentCap)

	var result *PaymentResult

	// 执行缴费事务
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 行锁重读，拿到上一笔缴费提交后的最新状态
		locked, err := s.accountRepo.GetByStudentForUpdate(ctx, tx, studentID, s.cfg.Business.Semester, s.cfg.Business.AcademicYear)
		if err != nil {
			return err
		}

		// 超缴上限校验必须基于最新余额
		if amount.GreaterThan(locked.RemainingBalance.Add(overpaymentCap)) {
			return ErrInvalidAmount
		}

		// 缴费流水金额记负数，描述内嵌参考号
		trans := &model.StudentTransaction{
			TransactionNo:    transactionNo,
			StudentID:        studentID,
			AccountID:        locked.ID,
			Type:             model.TransactionTypePayment,
			Description:      fmt.Sprintf("PAYMENT RECEIVED (%s)", reference),
			Amount:           amount.Neg(),
			PaymentMethod:    method.MethodCode,
			PaymentReference: &reference,
		}
		if err := s.transactionRepo.Create(ctx, tx, trans); err != nil {
			return fmt.Errorf("记录流水失败: %w", err)
		}

		locked.ApplyPayment(amount)
		if err := s.accountRepo.UpdateBalances(ctx, tx, locked); err != nil {
			return fmt.Errorf("更新账户失败: %w", err)
		}

		msgPayload := map[string]interface{}{
			"transaction_no":    transactionNo,
			"payment_reference": reference,
			"student_id":        studentID,
			"account_id":        locked.ID,
			"method_code":       method.MethodCode,
			"amount":            amount.String(),
			"prelim_status":     locked.PrelimStatus,
			"exam_permission":   locked.ExamPermission,
			"paid_at":           time.Now().Format(time.RFC3339),
		}
		payloadBytes, _ := json.Marshal(msgPayload)

		outboxMsg := &model.OutboxMessage{
			MessageKey: reference,
			Topic:      s.cfg.Kafka.Topic.PaymentReceipt,
			Payload:    string(payloadBytes),
			Status:     model.OutboxStatusPending,
		}
		if err := s.outboxRepo.Create(ctx, tx, outboxMsg); err != nil {
			return fmt.Errorf("写入回执消息失败: %w", err)
		}

		result = &PaymentResult{
			TransactionNo:    transactionNo,
			PaymentReference: reference,
			PrelimStatus:     locked.PrelimStatus,
			ExamPermission:   locked.ExamPermission,
			RemainingBalance: locked.RemainingBalance,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Printf("缴费成功: transactionNo=%s, reference=%s, studentID=%d, amount=%s",
		transactionNo, reference, studentID, amount.String())

	return result, nil
}
