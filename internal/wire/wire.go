// Package wire provides dependency injection for the flowdeck application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"
	"time"

	"github.com/example/flowdeck/internal/adapters/sqlite"
	"github.com/example/flowdeck/internal/app"
	"github.com/example/flowdeck/internal/config"
	"github.com/example/flowdeck/internal/core/flow"
	"github.com/example/flowdeck/internal/db"
	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/ports/secondary"
)

var (
	flowService   primary.FlowService
	rewardService primary.RewardService
	taskService   primary.TaskService
	visionService primary.VisionService
	statsService  primary.StatsService
	userRepo      secondary.UserRepository
	once          sync.Once
)

// FlowService returns the singleton FlowService instance.
func FlowService() primary.FlowService {
	once.Do(initServices)
	return flowService
}

// RewardService returns the singleton RewardService instance.
func RewardService() primary.RewardService {
	once.Do(initServices)
	return rewardService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// VisionService returns the singleton VisionService instance.
func VisionService() primary.VisionService {
	once.Do(initServices)
	return visionService
}

// StatsService returns the singleton StatsService instance.
func StatsService() primary.StatsService {
	once.Do(initServices)
	return statsService
}

// UserRepository returns the singleton user repository. The init command
// talks to it directly; there is no user service on top.
func UserRepository() secondary.UserRepository {
	once.Do(initServices)
	return userRepo
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	flowRepo := sqlite.NewFlowStateRepository(database)
	historyRepo := sqlite.NewSessionHistoryRepository(database)
	rewardRepo := sqlite.NewRewardRepository(database)
	taskRepo := sqlite.NewTaskRepository(database)
	visionRepo := sqlite.NewVisionRepository(database)
	userRepo = sqlite.NewUserRepository(database)

	clock := flow.SystemClock{}
	suppliers := app.BuildMetricSuppliers(historyRepo, taskRepo, visionRepo, clock)

	// Create services (primary ports implementation)
	rewardService = app.NewRewardService(rewardRepo, suppliers)
	flowService = app.NewFlowService(flowRepo, historyRepo, taskRepo, rewardService, clock, resumeWindow())
	taskService = app.NewTaskService(taskRepo, rewardService)
	visionService = app.NewVisionService(visionRepo, rewardService)
	statsService = app.NewStatsService(historyRepo)
}

// resumeWindow reads the configured resume freshness window. A missing
// config just means the default window.
func resumeWindow() time.Duration {
	dir, err := config.Dir()
	if err != nil {
		return config.DefaultResumeWindowHours * time.Hour
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return config.DefaultResumeWindowHours * time.Hour
	}
	return time.Duration(cfg.ResumeWindowHoursOrDefault()) * time.Hour
}
