package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/opencamp-hq/backend/api"
	"github.com/opencamp-hq/backend/db"
	"github.com/opencamp-hq/backend/log"
	"github.com/opencamp-hq/backend/notifications"
	"github.com/opencamp-hq/backend/notifications/mailtemplates"
	"github.com/opencamp-hq/backend/notifications/smtp"
	"github.com/opencamp-hq/backend/stripe"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.String("mongo-url", "", "the URL of the MongoDB server")
	flag.String("mongo-db", "opencamp", "the name of the MongoDB database")
	flag.String("stripe-api-key", "", "Stripe secret API key")
	flag.String("stripe-webhook-secret", "", "Stripe webhook signing secret")
	flag.String("smtp-server", "", "SMTP server")
	flag.Int("smtp-port", 587, "SMTP port")
	flag.String("smtp-username", "", "SMTP username")
	flag.String("smtp-password", "", "SMTP password")
	flag.String("email-from-address", "", "sender email address")
	flag.String("email-from-name", "OpenCamp", "sender display name")
	flag.String("web-app-url", "http://localhost:3000", "web application URL")
	flag.String("log-level", "info", "log level (debug, info, warn, error)")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("CAMP")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	log.Init(viper.GetString("log-level"), "stdout")
	host := viper.GetString("host")
	port := viper.GetInt("port")
	mongoURL := viper.GetString("mongo-url")
	mongoDB := viper.GetString("mongo-db")
	stripeAPIKey := viper.GetString("stripe-api-key")
	stripeWebhookSecret := viper.GetString("stripe-webhook-secret")
	if stripeAPIKey == "" || stripeWebhookSecret == "" {
		log.Fatal("stripe-api-key and stripe-webhook-secret are required")
	}
	// initialize the MongoDB database
	database, err := db.New(mongoURL, mongoDB)
	if err != nil {
		log.Fatalf("could not create the MongoDB database: %v", err)
	}
	defer database.Close()
	// initialize the email service
	smtpServer := viper.GetString("smtp-server")
	fromAddress := viper.GetString("email-from-address")
	if smtpServer == "" || fromAddress == "" {
		log.Fatal("smtp-server and email-from-address are required")
	}
	var mailer notifications.NotificationService = new(smtp.Email)
	if err := mailer.New(&smtp.Config{
		FromName:     viper.GetString("email-from-name"),
		FromAddress:  fromAddress,
		SMTPServer:   smtpServer,
		SMTPPort:     viper.GetInt("smtp-port"),
		SMTPUsername: viper.GetString("smtp-username"),
		SMTPPassword: viper.GetString("smtp-password"),
	}); err != nil {
		log.Fatalf("could not create the email service: %v", err)
	}
	if err := mailtemplates.Load(); err != nil {
		log.Fatalf("could not load email templates: %v", err)
	}
	log.Infow("email service created", "from", fromAddress)
	// create the payments service
	paymentsService, err := stripe.NewService(&stripe.Config{
		APIKey:        stripeAPIKey,
		WebhookSecret: stripeWebhookSecret,
	}, database, mailer)
	if err != nil {
		log.Fatalf("could not create the payments service: %v", err)
	}
	// create the local API server
	api.New(&api.Config{
		Host:      host,
		Port:      port,
		DB:        database,
		Stripe:    paymentsService,
		WebAppURL: viper.GetString("web-app-url"),
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
