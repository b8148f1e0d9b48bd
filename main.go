package main

import (
	"context"
	"fmt"
	"time"
	"tracker/account"
	"tracker/common"
	"tracker/config"
	"tracker/domain"
	"tracker/infra/tracing"
	"tracker/persistence"
	"tracker/servehttp"
	"tracker/session"
	"tracker/slug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config failed %v", err)
	}
	if err := common.ConfigureLogging(cfg.ServiceName, cfg.LogLevel); err != nil {
		logrus.Fatalf("configure logging failed %v", err)
	}
	logrus.WithField("environment", cfg.Environment).Info("service start")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.Environment, ServerName: common.GetServiceInstance()}); err != nil {
			logrus.Warnf("sentry disabled: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if closer, err := tracing.InitGlobalTracer(cfg.ServiceName); err != nil {
		logrus.Warnf("tracer disabled: %v", err)
	} else {
		defer closer.Close()
	}

	// create database (no conflict)
	if cfg.Database.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(cfg.Database.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database %v", err)
		}
	}
	ds := &persistence.DataSourceManager{DatabaseConfig: &cfg.Database}
	if err := ds.Start(); err != nil {
		logrus.Fatalf("database conneciton failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	if err := ds.GormDB(context.Background()).AutoMigrate(&account.User{}, &domain.Workspace{}, &domain.Membership{},
		&domain.Team{}, &domain.TeamMember{}, &domain.IssueSequence{}, &domain.Issue{}).Error; err != nil {
		logrus.Fatalf("database migration failed %v", err)
	}

	if err := slug.RegisterBindingValidations(); err != nil {
		logrus.Fatalf("register validations failed %v", err)
	}
	if err := account.RegisterBindingValidations(); err != nil {
		logrus.Fatalf("register validations failed %v", err)
	}

	session.ActiveTokenManager = session.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	session.CookieSecure = cfg.CookieSecure
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer client.Close()
		if err := client.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("redis connection failed %v", err)
		}
		session.ActiveRevocationStore = session.NewRedisRevocationStore(client)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := servehttp.BuildEngine(cfg)
	if err := servehttp.StartHTTPServer(engine, fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logrus.Errorf("http server failed %v", err)
	}
}
