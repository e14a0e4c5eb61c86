package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/northwind-labs/employee-directory/backend/internal/config"
	"github.com/northwind-labs/employee-directory/backend/internal/repository"
	"github.com/northwind-labs/employee-directory/backend/internal/seed"
	"github.com/northwind-labs/employee-directory/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "operation (1: insert random employees, 2: import employees from csv)")
	flag.IntVar(&n, "n", 5, "number of random employees to insert")
	flag.StringVar(&file, "file", "./internal/seed/data/employees.csv", "csv file to import")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// create the database pool
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the network, ping to make sure the DSN works
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	// create the repository
	repo, err := repository.NewRepository(cfg, dbpool)
	if err != nil {
		logger.Error("failed to create repository", "error", err)
		return
	}

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("number of employees must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			employee := utils.GenerateRandomEmployee()

			if err := repo.CreateEmployee(employee); err != nil {
				slog.Error("failed to insert employee", slog.String("error", err.Error()))
				continue
			}

			// the insert only writes the name columns, fill in the rest
			if err := repo.UpdateEmployee(employee); err != nil {
				slog.Error("failed to fill employee details", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("inserted random employees", slog.Int("count", cnt))
	case 2:
		seed.ImportEmployees(repo, file)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
