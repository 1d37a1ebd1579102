package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	crmmiddleware "github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/identity"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Fronteiras: persistência remota + identidade
	leadRepo := database.NewLeadRepository(db)
	identityProvider := identity.NewProvider()

	// 2. Fila de eventos (opcional: sem RABBITMQ_HOST o store roda sem eventos)
	var producer usecase.QueueProducerInterface
	var rabbitConn *amqp091.Connection
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"),
			os.Getenv("RABBITMQ_PASS"),
			host,
			os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		// Worker: consome os eventos e manda o resumo de importação por email
		mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if mailPort == 0 {
			mailPort = 587
		}
		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		)

		worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go worker.Start(queue.QueueName)
	}

	// 3. O store: fonte única de verdade do lado do cliente
	store := usecase.NewLeadStore(leadRepo, identityProvider, producer)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(store)
	importExportHandler := handlers.NewImportExportHandler(store)
	sessionHandler := handlers.NewSessionHandler(identityProvider)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(crmmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/session", sessionHandler.HandleSignIn)
	r.Delete("/session", sessionHandler.HandleSignOut)
	r.Get("/session", sessionHandler.HandleCurrent)

	r.Get("/leads", leadHandler.HandleList)
	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/leads/{id}", leadHandler.HandleGet)
	r.Put("/leads/{id}", leadHandler.HandleUpdate)
	r.Delete("/leads/{id}", leadHandler.HandleDelete)
	r.Post("/leads/{id}/interactions", leadHandler.HandleCreateInteraction)

	r.Get("/filters", leadHandler.HandleGetFilters)
	r.Put("/filters", leadHandler.HandleSetFilters)

	r.Post("/leads/import", importExportHandler.HandleImport)
	r.Get("/leads/export", importExportHandler.HandleExport)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 Server LigueCRM rodando na porta %s", port)
	http.ListenAndServe(port, r)
}
