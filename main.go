package main

import (
	"log"

	"github.com/KMuszynski/Cloud-Computing/config"
	"github.com/KMuszynski/Cloud-Computing/database"
	"github.com/KMuszynski/Cloud-Computing/handlers"
	"github.com/KMuszynski/Cloud-Computing/middleware"
	"github.com/KMuszynski/Cloud-Computing/repositories"
	"github.com/KMuszynski/Cloud-Computing/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment defaults")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	allocator := storage.NewAllocator(cfg.StorageRoot)

	userRepo := repositories.NewUserRepository(db)
	fileRepo := repositories.NewFileRepository(db)
	logRepo := repositories.NewLogRepository(db)

	authHandlers := handlers.NewAuthHandlers(userRepo, logRepo)
	fileHandlers := handlers.NewFileHandlers(db, allocator, userRepo, fileRepo, logRepo)
	logHandlers := handlers.NewLogHandlers(logRepo)

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, user_id",
	}))

	app.Post("/add_user", authHandlers.AddUser)
	app.Post("/login", authHandlers.Login)
	app.Post("/logout", middleware.RequireUserID(), authHandlers.Logout)
	app.Post("/update_profile", authHandlers.UpdateProfile)

	app.Post("/upload", middleware.RequireUserID(), fileHandlers.Upload)
	app.Delete("/delete_file/:file_id", middleware.RequireUserID(), fileHandlers.Delete)
	app.Get("/get_files", middleware.RequireUserID(), fileHandlers.GetFiles)
	app.Get("/download_file/:file_id", middleware.RequireUserID(), fileHandlers.Download)

	app.Get("/get_logs", logHandlers.GetLogs)

	log.Printf("File server listening on %s", cfg.ListenAddr)
	log.Fatal(app.Listen(cfg.ListenAddr))
}
