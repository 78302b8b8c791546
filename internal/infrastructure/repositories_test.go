package infrastructure

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Finboard/config"
	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/goal"
	"Finboard/internal/domain/report"
	"Finboard/internal/domain/salary"
	"Finboard/internal/domain/shared"
	"Finboard/internal/domain/user"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositorySuite struct {
	suite.Suite
	db       *gorm.DB
	tx       *TxManager
	users    *UserRepository
	goals    *GoalRepository
	expenses *ExpenseRepository
	salaries *SalaryRepository
	reports  *ShareReportRepository
	ctx      context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	cfg := &config.Config{
		App: config.AppConfig{Environment: "test"},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			DSN:    "file:" + ulid.Make().String() + "?mode=memory&cache=shared",
		},
	}
	db, err := NewDb(cfg)
	s.Require().NoError(err)

	s.db = db
	s.tx = NewTxManager(db)
	s.users = NewUserRepository(db)
	s.goals = NewGoalRepository(db)
	s.expenses = NewExpenseRepository(db)
	s.salaries = NewSalaryRepository(db)
	s.reports = NewShareReportRepository(db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *RepositorySuite) createUser(username, first, last string) *user.User {
	now := pkg.SetTimestamps()
	u := &user.User{
		Id:        ulid.Make(),
		Username:  username,
		Password:  "hashed",
		FirstName: first,
		LastName:  last,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *RepositorySuite) TestUserCreateAndLookup() {
	u := s.createUser("jane@example.com", "Jane", "Doe")

	byID, err := s.users.GetByID(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Equal("jane@example.com", byID.Username)

	byName, err := s.users.GetByUsername(s.ctx, "jane@example.com")
	s.Require().NoError(err)
	s.Equal(u.Id, byName.Id)

	s.NoError(s.users.Exists(s.ctx, u.Id))
	s.ErrorIs(s.users.Exists(s.ctx, ulid.Make()), appErrors.ErrUserNotFound)

	_, err = s.users.GetByID(s.ctx, ulid.Make())
	s.ErrorIs(err, appErrors.ErrUserNotFound)
}

func (s *RepositorySuite) TestUserDuplicateUsername() {
	s.createUser("dup@example.com", "A", "B")

	err := s.users.Create(s.ctx, &user.User{
		Id:       ulid.Make(),
		Username: "dup@example.com",
		Password: "x",
	})
	s.ErrorIs(err, appErrors.ErrDuplicateUser)
}

func (s *RepositorySuite) TestUserUpdateProfile() {
	u := s.createUser("ed@example.com", "Ed", "Old")
	u.LastName = "New"
	u.UpdatedAt = pkg.SetTimestamps()
	s.Require().NoError(s.users.Update(s.ctx, u))

	got, err := s.users.GetByID(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Equal("New", got.LastName)

	s.ErrorIs(s.users.Update(s.ctx, &user.User{Id: ulid.Make()}), appErrors.ErrUserNotFound)
}

func (s *RepositorySuite) TestUserSearch() {
	me := s.createUser("me@example.com", "Maria", "Lopes")
	s.createUser("mario@example.com", "Mario", "Rossi")
	s.createUser("ana@example.com", "Ana", "Marques")
	s.createUser("bob@example.com", "Bob", "Stone")

	found, err := s.users.Search(s.ctx, "MAR", me.Id, 10)
	s.Require().NoError(err)
	s.Len(found, 2)
	for _, u := range found {
		s.NotEqual(me.Id, u.Id)
	}

	found, err = s.users.Search(s.ctx, "%", me.Id, 10)
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *RepositorySuite) TestBalanceRoundTrip() {
	u := s.createUser("bal@example.com", "B", "L")

	err := s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		b, err := s.users.LockBalance(ctx, u.Id)
		if err != nil {
			return err
		}
		return s.users.SetBalance(ctx, u.Id, shared.Balance{Current: b.Current + 500, Previous: b.Current})
	})
	s.Require().NoError(err)

	b, err := s.users.GetBalance(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Equal(shared.Balance{Current: 500, Previous: 0}, b)
}

func (s *RepositorySuite) TestTransactionRollsBack() {
	u := s.createUser("tx@example.com", "T", "X")
	boom := errors.New("insert failed")

	err := s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.users.SetBalance(ctx, u.Id, shared.Balance{Current: 999}); err != nil {
			return err
		}
		return boom
	})
	s.Require().Error(err)
	s.ErrorIs(err, appErrors.NewDatabaseError(nil))

	b, err := s.users.GetBalance(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Zero(b.Current)
}

func (s *RepositorySuite) TestGoalAllocation() {
	u := s.createUser("alloc@example.com", "A", "L")

	run := func(delta float64) error {
		return s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
			return s.users.AddGoalAllocation(ctx, u.Id, delta)
		})
	}

	s.Require().NoError(run(60))
	s.Require().NoError(run(33.33))

	err := run(10)
	var appErr *appErrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal("ALLOCATION_EXCEEDED", appErr.Code)
	s.InDelta(6.67, appErr.Details["remaining"], 0.001)

	s.Require().NoError(run(6.67))
	s.Require().NoError(run(-60))

	got, err := s.users.GetByID(s.ctx, u.Id)
	s.Require().NoError(err)
	s.InDelta(40.0, got.GoalAllocationPercent, 0.001)
}

func (s *RepositorySuite) TestGoals() {
	u := s.createUser("goals@example.com", "G", "O")
	other := s.createUser("other@example.com", "O", "T")
	g := &goal.Goal{
		Id:                   ulid.Make(),
		UserId:               u.Id,
		GoalName:             "Laptop",
		TargetAmount:         2000,
		TimeDuration:         12,
		PercentageAllocation: 25,
		CreatedAt:            pkg.SetTimestamps(),
	}
	s.Require().NoError(s.goals.Create(s.ctx, g))

	list, err := s.goals.GetByUserID(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Laptop", list[0].GoalName)

	_, err = s.goals.GetByIDAndUser(s.ctx, g.Id, other.Id)
	s.ErrorIs(err, appErrors.ErrGoalNotFound)

	s.ErrorIs(s.goals.Delete(s.ctx, g.Id, other.Id), appErrors.ErrGoalNotFound)
	s.Require().NoError(s.goals.Delete(s.ctx, g.Id, u.Id))

	list, err = s.goals.GetByUserID(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RepositorySuite) TestExpenses() {
	u := s.createUser("exp@example.com", "E", "X")
	base := pkg.SetTimestamps()
	add := func(category string, amount float64, d time.Time, offset time.Duration) {
		s.Require().NoError(s.expenses.Create(s.ctx, &expense.Expense{
			Id:            ulid.Make(),
			UserId:        u.Id,
			Category:      category,
			Amount:        amount,
			Date:          d,
			WeekStartDate: d,
			CreatedAt:     base.Add(offset),
		}))
	}
	add("Rent", 900, date(2024, 12, 30), 0)
	add("Food", 20, date(2025, 1, 6), time.Second)
	add("Fuel", 40, date(2025, 1, 6), 2*time.Second)
	add("Gym", 30, date(2025, 2, 1), 3*time.Second)

	inYear, err := s.expenses.GetByUserInRange(s.ctx, u.Id, date(2025, 1, 1), date(2026, 1, 1))
	s.Require().NoError(err)
	s.Len(inYear, 3)

	since, err := s.expenses.GetByUserSince(s.ctx, u.Id, date(2025, 1, 7))
	s.Require().NoError(err)
	s.Require().Len(since, 1)
	s.Equal("Gym", since[0].Category)

	latest, err := s.expenses.GetLatest(s.ctx, u.Id, 3)
	s.Require().NoError(err)
	s.Require().Len(latest, 3)
	s.Equal([]string{"Gym", "Fuel", "Food"}, []string{latest[0].Category, latest[1].Category, latest[2].Category})
	s.Equal(date(2025, 2, 1), latest[0].Date)
}

func (s *RepositorySuite) TestSalaries() {
	u := s.createUser("sal@example.com", "S", "A")

	_, err := s.salaries.GetLast(s.ctx, u.Id)
	s.ErrorIs(err, appErrors.ErrSalaryNotFound)

	for _, sal := range []*salary.Salary{
		{Id: ulid.Make(), UserId: u.Id, Amount: 3000, SalaryDate: date(2025, 1, 5), CreatedAt: pkg.SetTimestamps()},
		{Id: ulid.Make(), UserId: u.Id, Amount: 500, SalaryDate: date(2025, 2, 20), CreatedAt: pkg.SetTimestamps()},
	} {
		s.Require().NoError(s.salaries.Create(s.ctx, sal))
	}

	last, err := s.salaries.GetLast(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Equal(500.0, last.Amount)

	jan, err := s.salaries.GetByUserInRange(s.ctx, u.Id, date(2025, 1, 1), date(2025, 2, 1))
	s.Require().NoError(err)
	s.Require().Len(jan, 1)
	s.Equal(3000.0, jan[0].Amount)
}

func (s *RepositorySuite) TestShareReports() {
	sender := s.createUser("send@example.com", "Ana", "Silva")
	receiver := s.createUser("recv@example.com", "Bob", "Stone")

	first := &report.ShareReport{
		Id: ulid.Make(), SenderId: sender.Id, SenderFirstName: "Ana", SenderLastName: "Silva",
		ReceiverId: receiver.Id, Data: `{"senderInfo":{"firstName":"Ana"}}`, SharedDate: date(2025, 3, 1),
	}
	second := &report.ShareReport{
		Id: ulid.Make(), SenderId: sender.Id, SenderFirstName: "Ana", SenderLastName: "Silva",
		ReceiverId: receiver.Id, Data: `{}`, SharedDate: date(2025, 3, 2),
	}
	s.Require().NoError(s.reports.Create(s.ctx, first))
	s.Require().NoError(s.reports.Create(s.ctx, second))

	unread, err := s.reports.CountUnread(s.ctx, receiver.Id)
	s.Require().NoError(err)
	s.Equal(int64(2), unread)

	ids, err := s.reports.GetUnreadIDs(s.ctx, receiver.Id)
	s.Require().NoError(err)
	s.Equal([]ulid.ULID{second.Id, first.Id}, ids)

	details, err := s.reports.GetSenderDetails(s.ctx, receiver.Id)
	s.Require().NoError(err)
	s.Require().Len(details, 2)
	s.Equal(second.Id, details[0].ReportId)
	s.Equal("Silva", details[0].LastName)

	got, err := s.reports.GetForReceiver(s.ctx, first.Id, sender.Id, receiver.Id)
	s.Require().NoError(err)
	s.Equal(first.Data, got.Data)

	_, err = s.reports.GetForReceiver(s.ctx, first.Id, receiver.Id, receiver.Id)
	s.ErrorIs(err, appErrors.ErrReportNotFound)

	s.Require().NoError(s.reports.MarkAsRead(s.ctx, first.Id, receiver.Id))
	s.ErrorIs(s.reports.MarkAsRead(s.ctx, first.Id, receiver.Id), appErrors.ErrReportNotFound)
	s.ErrorIs(s.reports.MarkAsRead(s.ctx, second.Id, sender.Id), appErrors.ErrReportNotFound)

	unread, err = s.reports.CountUnread(s.ctx, receiver.Id)
	s.Require().NoError(err)
	s.Equal(int64(1), unread)

	total, err := s.reports.CountByReceiver(s.ctx, receiver.Id)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
}

// The expense flow against a real database: the balance and the row commit together.
func (s *RepositorySuite) TestExpenseServiceIsAtomic() {
	u := s.createUser("atomic@example.com", "A", "T")
	s.Require().NoError(s.users.SetBalance(s.ctx, u.Id, shared.Balance{Current: 1000, Previous: 1000}))

	checker := shared.NewUserCheckerService(s.users)
	goals := goal.NewService(s.goals, s.users, s.users, s.tx, checker)
	svc := expense.NewService(s.expenses, s.users, s.tx, goals, checker)

	result, err := svc.AddExpense(s.ctx, &expense.CreateRequest{UserId: u.Id, Category: "Food", Amount: 200, Date: "2025-01-15"})
	s.Require().NoError(err)
	s.Equal(800.0, result.NewBalance)
	s.Equal(-20.0, result.AccountData.PercentChange)

	_, err = svc.AddExpense(s.ctx, &expense.CreateRequest{UserId: ulid.Make(), Category: "Food", Amount: 10})
	s.ErrorIs(err, appErrors.ErrUserNotFound)

	b, err := s.users.GetBalance(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Equal(shared.Balance{Current: 800, Previous: 1000}, b)

	latest, err := s.expenses.GetLatest(s.ctx, u.Id, 5)
	s.Require().NoError(err)
	s.Len(latest, 1)
}

// Concurrent expenses and salaries for one user must serialise on the balance row: no update is lost.
func (s *RepositorySuite) TestConcurrentBalanceMutationsAreSerialised() {
	u := s.createUser("busy@example.com", "B", "U")
	s.Require().NoError(s.users.SetBalance(s.ctx, u.Id, shared.Balance{Current: 1000, Previous: 1000}))

	checker := shared.NewUserCheckerService(s.users)
	goals := goal.NewService(s.goals, s.users, s.users, s.tx, checker)
	expenses := expense.NewService(s.expenses, s.users, s.tx, goals, checker)
	salaries := salary.NewService(s.salaries, s.users, s.tx, goals, expenses, checker)

	const expenseCount, expenseAmount = 20, 12.5
	const salaryCount, salaryAmount = 5, 100.0

	var wg sync.WaitGroup
	errs := make(chan error, expenseCount+salaryCount)
	for i := 0; i < expenseCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := expenses.AddExpense(s.ctx, &expense.CreateRequest{UserId: u.Id, Category: "Food", Amount: expenseAmount, Date: "2025-02-03"})
			errs <- err
		}()
	}
	for i := 0; i < salaryCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := salaries.AddSalary(s.ctx, &salary.CreateRequest{UserId: u.Id, Amount: salaryAmount, Date: "2025-02-01"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	b, err := s.users.GetBalance(s.ctx, u.Id)
	s.Require().NoError(err)
	s.Equal(1000-expenseCount*expenseAmount+salaryCount*salaryAmount, b.Current)

	rows, err := s.expenses.GetByUserSince(s.ctx, u.Id, time.Time{})
	s.Require().NoError(err)
	s.Len(rows, expenseCount)

	paid, err := s.salaries.GetByUserInRange(s.ctx, u.Id, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Len(paid, salaryCount)
}
