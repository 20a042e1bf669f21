package main

import (
	"context"
	"log"
	"time"

	"Project_Reviews/internal/config"
	"Project_Reviews/internal/model"
	"Project_Reviews/internal/pkg"
	"Project_Reviews/internal/repository/mysql"
	"Project_Reviews/internal/repository/redis"
	"Project_Reviews/internal/router"
	"Project_Reviews/internal/service"
)

func main() {
	config.LoadEnv()

	// JWT密钥从环境读取
	pkg.AccessSecret = []byte(config.GetEnv("JWT_ACCESS_SECRET", string(pkg.AccessSecret)))
	pkg.RefreshSecret = []byte(config.GetEnv("JWT_REFRESH_SECRET", string(pkg.RefreshSecret)))

	dsn := config.GetEnv("MYSQL_DSN",
		"user:password@tcp(127.0.0.1:3306)/project_reviews?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init(
		config.GetEnv("REDIS_ADDR", "127.0.0.1:6379"),
		config.GetEnv("REDIS_PASSWORD", ""),
		config.GetEnvInt("REDIS_DB", 0),
	); err != nil {
		panic(err)
	}

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Project{},
		&model.Release{},
		&model.Comment{},
		&model.Review{},
		&model.Vote{},
		&model.Notification{},
		&model.NotificationOutbox{},
	)

	// 通知事件出口：配了kafka就推kafka，没配降级为日志
	var sender service.Sender
	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
		Brokers: config.GetEnvList("KAFKA_BROKERS", nil),
		Topic:   config.GetEnv("KAFKA_NOTIFY_TOPIC", "notification-events"),
	})
	if err != nil {
		log.Println("kafka producer init failed, falling back to log sender:", err)
	} else {
		sender = producer
		defer producer.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relayer := service.NewOutboxRelayer(mysql.DB, sender, 3*time.Second)
	go relayer.Run(ctx)

	// Gin
	r := router.InitRouter()
	if err := r.Run(config.GetEnv("HTTP_ADDR", ":8080")); err != nil {
		return
	}
}
