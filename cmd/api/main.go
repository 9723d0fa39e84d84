package main

import (
	"context"
	"os"
	"strings"

	"CampusConnect/internal/model"
	"CampusConnect/internal/pkg"
	"CampusConnect/internal/repository/mysql"
	"CampusConnect/internal/repository/redis"
	"CampusConnect/internal/router"
	"CampusConnect/internal/service"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if s := os.Getenv("JWT_ACCESS_SECRET"); s != "" {
		pkg.AccessSecret = []byte(s)
	}
	if s := os.Getenv("JWT_REFRESH_SECRET"); s != "" {
		pkg.RefreshSecret = []byte(s)
	}

	dsn := getenv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/campus?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	if err := redis.Init(getenv("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), 0); err != nil {
		panic(err)
	}

	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.OrganizationMembership{},
		&model.Thread{},
		&model.ThreadMembership{},
		&model.Post{},
		&model.SavedPost{},
		&model.Comment{},
		&model.Vote{},
		&model.EngagementOutbox{},
	)

	ctx := context.Background()

	sender := service.LogSender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   getenv("KAFKA_TOPIC", "campus-engagement"),
		})
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	go service.NewOutboxRelayer(sender).Run(ctx)
	go service.NewViewSyncer().Run(ctx)

	emailCfg := pkg.SMTPConfig{
		Host:     getenv("SMTP_HOST", "smtp.example.com"),
		Port:     587,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getenv("SMTP_FROM", "NoReply <no-reply@example.com>"),
	}

	r := router.InitRouter(emailCfg)
	if err := r.Run(":8080"); err != nil {
		return
	}
}
