package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"Aura_Community/internal/model"
	"Aura_Community/internal/pkg"
	"Aura_Community/internal/repository/mysql"
	"Aura_Community/internal/repository/redis"
	"Aura_Community/internal/router"
	"Aura_Community/internal/service"

	"github.com/joho/godotenv"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	dsn := env("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/aura?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	redisDB, _ := strconv.Atoi(env("REDIS_DB", "0"))
	if err := redis.Init(env("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), redisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.SessionAttendee{},
		&model.Artwork{},
		&model.ArtworkLike{},
		&model.Comment{},
		&model.Post{},
		&model.EngagementOutbox{},
	); err != nil {
		panic(err)
	}

	// outbox 投递器：配了broker走kafka，否则降级打日志
	sender := service.LogSender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   env("KAFKA_TOPIC", "aura.engagement"),
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)

	smtpPort, _ := strconv.Atoi(env("SMTP_PORT", "587"))
	emailCfg := pkg.SMTPConfig{
		Host:     env("SMTP_HOST", "smtp.example.com"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     env("SMTP_FROM", "NoReply <no-reply@example.com>"),
	}

	r := router.InitRouter(mysql.DB, emailCfg)
	if err := r.Run(":" + env("PORT", "8080")); err != nil {
		log.Fatal(err)
	}
}
