package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ClaireRuysschaert/BudgetMate/internal/config"
	"github.com/ClaireRuysschaert/BudgetMate/internal/database"
	"github.com/ClaireRuysschaert/BudgetMate/internal/logger"
	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/prompt"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Import error: %v", err)
	}
}

func run() error {
	email := flag.String("user", "", "email of the owning user")
	accountID := flag.Uint("account", 0, "bank account ID")
	statementType := flag.String("type", string(models.StatementTypeBankStatement), "statement type (RB, FACT, CR, DB, OT)")
	start := flag.String("start", "", "period start date (YYYY-MM-DD)")
	end := flag.String("end", "", "period end date (YYYY-MM-DD)")
	flag.Parse()

	if *email == "" || *accountID == 0 || flag.NArg() == 0 {
		return fmt.Errorf("usage: import -user EMAIL -account ID [-type TYPE] -start DATE -end DATE FILE...")
	}

	switch models.StatementType(*statementType) {
	case models.StatementTypeBankStatement, models.StatementTypeReceipts,
		models.StatementTypeCredit, models.StatementTypeDebit, models.StatementTypeOther:
	default:
		return fmt.Errorf("unknown statement type: %s", *statementType)
	}

	startDate, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(time.DateOnly, *end)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	bankService := services.NewBankService(db)
	categoryService := services.NewCategoryService(db)
	statementService := services.NewStatementService(db, categoryService)
	shareService := services.NewShareService(db)

	// The console answers both the categorization and the sharing questions.
	console := prompt.NewConsole(os.Stdin, os.Stdout)
	ingestionService := services.NewIngestionService(db, bankService, categoryService,
		statementService, shareService, console, console)

	user, err := userService.GetUserByEmail(*email)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", *email, err)
	}

	files := make([]services.FileSpec, 0, flag.NArg())
	closers := make([]*os.File, 0, flag.NArg())
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		closers = append(closers, f)
		files = append(files, services.FileSpec{
			Name:          filepath.Base(path),
			Reader:        f,
			StatementType: models.StatementType(*statementType),
		})
	}

	summaries, reports, err := ingestionService.ImportFiles(files, startDate, endDate, *accountID, user.ID)
	if err != nil {
		return err
	}

	for _, summary := range summaries {
		if summary.AlreadyComplete {
			fmt.Printf("%s: already imported (statement %d)\n", summary.FileName, summary.StatementID)
			continue
		}
		fmt.Printf("%s: %d lines created, %d rows skipped, %d salary rows dropped\n",
			summary.FileName, summary.LinesCreated, summary.RowsSkipped, summary.RowsDropped)
	}
	for _, report := range reports {
		fmt.Printf("\nStatement %d\n", report.StatementID)
		fmt.Printf("  Total:        %s\n", report.Total.StringFixed(2))
		fmt.Printf("  Total shared: %s\n", report.TotalShared.StringFixed(2))
		for _, bucket := range report.SharedByCategory {
			fmt.Printf("  %s / %s: %s\n", bucket.Category, bucket.SubCategory, bucket.Total.StringFixed(2))
		}
	}
	return nil
}
