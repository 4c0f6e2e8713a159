package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"tuitionportal/internal/config"
	"tuitionportal/internal/model"
	"tuitionportal/internal/repository"
	"tuitionportal/pkg/idgen"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedService 演示数据初始化
// 创建演示学生、学期账户（含评估流水）、缴费渠道与初始成绩
// 全部学生初始为 prelim UNPAID，缴清后才能查看成绩
type SeedService struct {
	db          *gorm.DB
	cfg         *config.Config
	studentRepo *repository.StudentRepository
	accountRepo *repository.AccountRepository
	transRepo   *repository.TransactionRepository
	methodRepo  *repository.PaymentMethodRepository
	gradeRepo   *repository.GradeRepository
}

func NewSeedService(db *gorm.DB, cfg *config.Config) *SeedService {
	return &SeedService{
		db:          db,
		cfg:         cfg,
		studentRepo: repository.NewStudentRepository(db),
		accountRepo: repository.NewAccountRepository(db),
		transRepo:   repository.NewTransactionRepository(db),
		methodRepo:  repository.NewPaymentMethodRepository(db),
		gradeRepo:   repository.NewGradeRepository(db),
	}
}

// prelim 欠费占总评估的比例
var prelimRatio = decimal.NewFromFloat(0.33)

type seedStudent struct {
	studentNumber string
	firstName     string
	middleName    string
	lastName      string
	course        string
	yearLevel     int
	email         string
}

var seedStudents = []seedStudent{
	{"2024001", "Juan Carlos", "Santos", "Dela Cruz", "BSIT", 2, "juan.delacruz@student.example.edu.ph"},
	{"2024002", "Maria Elena", "Garcia", "Santos", "BSCS", 3, "maria.santos@student.example.edu.ph"},
	{"2024003", "Jose Miguel", "Reyes", "Fernandez", "BSIT", 1, "jose.fernandez@student.example.edu.ph"},
	{"2024004", "Ana Sophia", "Cruz", "Martinez", "BSCS", 2, "ana.martinez@student.example.edu.ph"},
	{"2024005", "Luis Antonio", "Mendoza", "Rodriguez", "BSIT", 4, "luis.rodriguez@student.example.edu.ph"},
}

// 标准学费评估明细，合计 45000.00
var seedAssessments = [][2]string{
	{"TUITION FEE @320.00/u", "9020.00"},
	{"TUITION FEE @1167.00/u", "10503.00"},
	{"TUITION FEE @434.00/u", "1302.00"},
	{"OTHER FEES", "6784.00"},
	{"OTHER/LAB FEE(S)", "14064.00"},
	{"PMS WaterDrinkingSystem (JV100486)", "60.00"},
	{"Internationalization Fee (JV100487)", "150.00"},
	{"Miscellaneous Fees", "3117.00"},
}

var seedSubjects = [][3]string{
	{"IT 101", "Programming Fundamentals", "3.0"},
	{"IT 102", "Data Structures and Algorithms", "3.0"},
	{"IT 103", "Database Management Systems", "3.0"},
	{"IT 104", "Web Development", "3.0"},
	{"GE 101", "Mathematics in the Modern World", "3.0"},
	{"GE 102", "Purposive Communication", "3.0"},
	{"PE 101", "Physical Education", "2.0"},
}

type seedMethod struct {
	name          string
	code          string
	serviceFee    string
	percentageFee string
	description   string
}

var seedMethods = []seedMethod{
	{"UnionBank UPay Online", "UNIONBANK", "0.00", "0.00", "Direct bank transfer with no additional fees"},
	{"Dragonpay Payment Gateway", "DRAGONPAY", "25.00", "2.00", "Multi-channel payment gateway with service fee"},
	{"BPI Online", "BPI", "15.00", "0.00", "BPI online banking with minimal service fee"},
	{"BDO Online", "BDO", "20.00", "0.00", "BDO online banking with service fee"},
	{"BDO Bills Payment", "BDO_BILLS", "10.00", "0.00", "BDO bills payment service"},
	{"Bukas Tuition Installment Plans", "BUKAS", "0.00", "3.50", "Flexible installment plans with processing fee"},
}

// Run 初始化演示数据，可重复执行（已存在的记录跳过）
func (s *SeedService) Run(ctx context.Context) error {
	if err := s.seedPaymentMethods(ctx); err != nil {
		return err
	}

	for _, ss := range seedStudents {
		if err := s.seedStudent(ctx, ss); err != nil {
			return err
		}
	}

	log.Println("演示数据初始化完成")
	return nil
}

func (s *SeedService) seedPaymentMethods(ctx context.Context) error {
	for _, m := range seedMethods {
		exists, err := s.methodRepo.CodeExists(ctx, m.code)
		if err != nil {
			return fmt.Errorf("查询缴费渠道失败: %w", err)
		}
		if exists {
			continue
		}

		serviceFee, _ := decimal.NewFromString(m.serviceFee)
		percentageFee, _ := decimal.NewFromString(m.percentageFee)
		method := &model.PaymentMethod{
			MethodCode:    m.code,
			MethodName:    m.name,
			ServiceFee:    serviceFee,
			PercentageFee: percentageFee,
			Description:   m.description,
			Active:        true,
		}
		if err := s.methodRepo.Create(ctx, method); err != nil {
			return fmt.Errorf("创建缴费渠道失败: %w", err)
		}
		log.Printf("创建缴费渠道: %s (%s)", m.name, m.code)
	}
	return nil
}

func (s *SeedService) seedStudent(ctx context.Context, ss seedStudent) error {
	exists, err := s.studentRepo.StudentNumberExists(ctx, ss.studentNumber)
	if err != nil {
		return fmt.Errorf("查询学生失败: %w", err)
	}
	if exists {
		log.Printf("学生已存在，跳过: %s", ss.studentNumber)
		return nil
	}

	// 演示密码统一为 password
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	student := &model.Student{
		StudentNumber: ss.studentNumber,
		FirstName:     ss.firstName,
		MiddleName:    ss.middleName,
		LastName:      ss.lastName,
		Course:        ss.course,
		YearLevel:     ss.yearLevel,
		Email:         ss.email,
		PasswordHash:  string(hash),
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return fmt.Errorf("创建学生失败: %w", err)
	}

	if err := s.seedAccount(ctx, student); err != nil {
		return err
	}

	if err := s.seedGrades(ctx, student); err != nil {
		return err
	}

	log.Printf("创建学生: %s - %s", student.StudentNumber, student.FullName())
	return nil
}

// seedAccount 创建学期账户并追加评估流水
// prelim 欠费 = 总评估 × 33%
func (s *SeedService) seedAccount(ctx context.Context, student *model.Student) error {
	totalAssessment := decimal.Zero
	for _, a := range seedAssessments {
		amount, _ := decimal.NewFromString(a[1])
		totalAssessment = totalAssessment.Add(amount)
	}

	account := &model.Account{
		StudentID:        student.ID,
		Semester:         s.cfg.Business.Semester,
		AcademicYear:     s.cfg.Business.AcademicYear,
		TotalAssessment:  totalAssessment,
		TotalPaid:        decimal.Zero,
		RemainingBalance: totalAssessment,
		PrelimAmountDue:  totalAssessment.Mul(prelimRatio).Round(2),
		MidtermAmountDue: decimal.Zero,
		FinalAmountDue:   decimal.Zero,
		PrelimStatus:     model.PaymentStatusUnpaid,
		MidtermStatus:    model.PaymentStatusUnpaid,
		FinalStatus:      model.PaymentStatusUnpaid,
		ExamPermission:   model.ExamNotPermitted,
	}
	if err := s.accountRepo.Create(ctx, nil, account); err != nil {
		return fmt.Errorf("创建账户失败: %w", err)
	}

	for _, a := range seedAssessments {
		amount, _ := decimal.NewFromString(a[1])
		trans := &model.StudentTransaction{
			TransactionNo: idgen.GenerateTransactionNo(),
			StudentID:     student.ID,
			AccountID:     account.ID,
			Type:          model.TransactionTypeAssessment,
			Description:   a[0],
			Amount:        amount,
		}
		if err := s.transRepo.Create(ctx, nil, trans); err != nil {
			return fmt.Errorf("创建评估流水失败: %w", err)
		}
	}

	return nil
}

// seedGrades 创建初始成绩，prelim 分数已出但被门禁挡住，缴清后可见
func (s *SeedService) seedGrades(ctx context.Context, student *model.Student) error {
	for _, subject := range seedSubjects {
		units, _ := decimal.NewFromString(subject[2])
		prelim := decimal.NewFromFloat(75 + rand.Float64()*20).Round(1)

		grade := &model.Grade{
			StudentID:    student.ID,
			SubjectCode:  subject[0],
			SubjectName:  subject[1],
			Units:        units,
			PrelimGrade:  &prelim,
			Semester:     s.cfg.Business.Semester,
			AcademicYear: s.cfg.Business.AcademicYear,
		}
		if err := s.gradeRepo.Create(ctx, grade); err != nil {
			return fmt.Errorf("创建成绩失败: %w", err)
		}
	}
	return nil
}
