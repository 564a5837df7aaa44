// Command seed creates a demo account with a month of sample data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"lifetrack/internal/classifier"
	"lifetrack/internal/config"
	"lifetrack/internal/database"
	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/logger"
	"lifetrack/internal/models"
	"lifetrack/internal/services"
)

const (
	demoEmail    = "demo@lifetrack.app"
	demoPassword = "password123"
)

type sampleTransaction struct {
	daysAgo     int
	txType      models.TransactionType
	amount      float64
	description string
}

var sampleTransactions = []sampleTransaction{
	{28, models.TransactionTypeIncome, 4200, "Monthly salary"},
	{27, models.TransactionTypeExpense, 1350, "Apartment rent"},
	{20, models.TransactionTypeIncome, 350, "Freelance design project"},
	{6, models.TransactionTypeExpense, 82.4, "Weekly groceries at the supermarket"},
	{4, models.TransactionTypeExpense, 15.99, "Netflix subscription"},
	{2, models.TransactionTypeExpense, 23.5, "Uber ride home"},
	{1, models.TransactionTypeExpense, 64, "Electricity bill"},
	{0, models.TransactionTypeExpense, 12.8, "Lunch at cafe"},
}

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()
	if err := dbManager.RunMigrations(); err != nil {
		return err
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	suggester := classifier.New(classifier.TableByName(cfg.ClassifierKeywords), nil, 0, logger.Named("classifier"))
	transactionService := services.NewTransactionService(db, suggester)
	goalService := services.NewGoalService(db)
	activityService := services.NewActivityService(db)

	if _, err := userService.GetUserByEmail(demoEmail); err == nil {
		log.Infof("Demo user %s already exists, nothing to do", demoEmail)
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	user, err := userService.CreateUser("Demo User", demoEmail, demoPassword)
	if err != nil {
		return fmt.Errorf("creating demo user: %w", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()
	for _, s := range sampleTransactions {
		date := now.AddDate(0, 0, -s.daysAgo)
		if _, err := transactionService.CreateTransaction(ctx, user.ID, services.CreateTransactionInput{
			Type:        s.txType,
			Amount:      s.amount,
			Description: s.description,
			Date:        &date,
		}); err != nil {
			return fmt.Errorf("creating transaction %q: %w", s.description, err)
		}
	}

	deadline := now.AddDate(0, 3, 0)
	goal, err := goalService.CreateGoal(user.ID, services.CreateGoalInput{
		Title:       "Emergency fund",
		Description: "Three months of expenses",
		TargetValue: 5000,
		Frequency:   models.GoalFrequencyMonthly,
		Deadline:    &deadline,
		Category:    "Savings",
	})
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}
	if _, err := goalService.RecordProgress(user.ID, goal.ID, 1200, "Initial deposit"); err != nil {
		return fmt.Errorf("recording goal progress: %w", err)
	}

	activity, err := activityService.CreateActivity(user.ID, services.CreateActivityInput{
		Name:      "Morning walk",
		Frequency: models.ActivityFrequencyDaily,
		Icon:      "walk",
	})
	if err != nil {
		return fmt.Errorf("creating activity: %w", err)
	}
	if _, err := activityService.CompleteActivity(user.ID, activity.ID, "30 minutes"); err != nil {
		return fmt.Errorf("completing activity: %w", err)
	}

	log.Infow("Seeded demo account",
		"email", demoEmail,
		"password", demoPassword,
		"transactions", len(sampleTransactions),
	)
	return nil
}
