package main

import (
	"fmt"
	"log"
	"os"

	"lavapro-backend/config"
	"lavapro-backend/models"
	"lavapro-backend/routes"
	"lavapro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CustomerNote{},
		&models.Order{},
		&models.Payment{},
	)
}

func main() {
	seedAdminUser()

	scheduler := services.NewScheduler(config.DB, services.NotifierFromEnv())
	scheduler.Start()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

// seedAdminUser creates the default admin when the users table is empty.
func seedAdminUser() {
	var count int64
	if err := config.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	log.Println("Nenhum usuário encontrado. Criando usuário admin padrão.")
	if _, err := services.NewAuthService(config.DB).
		Register("Admin", "admin@example.com", "admin123"); err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Usuário admin 'admin@example.com' com senha 'admin123' criado. MUDE A SENHA EM PRODUÇÃO!")
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
