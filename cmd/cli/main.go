package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/DanNess-system/Jardin-Infinito/internal/auth"
	"github.com/DanNess-system/Jardin-Infinito/internal/config"
	"github.com/DanNess-system/Jardin-Infinito/internal/models"
	"github.com/DanNess-system/Jardin-Infinito/internal/store"
	"github.com/DanNess-system/Jardin-Infinito/internal/wordpress"
)

const usage = "expected 'add-admin', 'seed', 'clean-sessions', 'wp-push' or 'wp-delete' subcommand"

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	email := addAdminCmd.String("email", "", "Email for the new admin")
	password := addAdminCmd.String("password", "", "Password for the new admin")
	name := addAdminCmd.String("name", "Administrador", "Display name for the new admin")

	wpPushCmd := flag.NewFlagSet("wp-push", flag.ExitOnError)
	pushID := wpPushCmd.Int("id", 0, "Local product ID to push")
	pushEntry := wpPushCmd.Int("entry", 0, "Existing WordPress entry ID to update instead of creating")

	wpDeleteCmd := flag.NewFlagSet("wp-delete", flag.ExitOnError)
	deleteID := wpDeleteCmd.Int("id", 0, "WordPress entry ID to delete")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		addAdmin(*email, *password, *name)
	case "seed":
		seed()
	case "clean-sessions":
		cleanSessions()
	case "wp-push":
		wpPushCmd.Parse(os.Args[2:])
		if *pushID < 1 {
			fmt.Println("a product id is required")
			wpPushCmd.PrintDefaults()
			os.Exit(1)
		}
		wpPush(*pushID, *pushEntry)
	case "wp-delete":
		wpDeleteCmd.Parse(os.Args[2:])
		if *deleteID < 1 {
			fmt.Println("an entry id is required")
			wpDeleteCmd.PrintDefaults()
			os.Exit(1)
		}
		wpDelete(*deleteID)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./jardin.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func addAdmin(email, password, name string) {
	db := openStore()

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.User{Email: email, Password: hashed, Name: name, Role: "admin"}
	if err := db.CreateUser(admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin '%s' created successfully.\n", email)
}

// seed loads a small starter catalog so the panel has something to show on a
// fresh database.
func seed() {
	db := openStore()

	count, err := db.CountProducts()
	if err != nil {
		log.Fatalf("Failed to count products: %v", err)
	}
	if count > 0 {
		fmt.Printf("Database already has %d products, skipping seed.\n", count)
		return
	}

	products := []models.Product{
		{
			Title:         "Hule Tinto",
			Description:   "Planta de interior de hojas anchas y brillantes, muy resistente.",
			Image:         "/JardinInfinito.png",
			OriginalPrice: 600,
			DiscountPrice: 450,
			Category:      "Interior",
			Stock:         10,
			Active:        true,
		},
		{
			Title:         "Palma Cica",
			Description:   "Palma ornamental de crecimiento lento, ideal para espacios amplios.",
			Image:         "/JardinInfinito.png",
			OriginalPrice: 950,
			DiscountPrice: 750,
			Category:      "Interior",
			Stock:         5,
			Active:        true,
		},
		{
			Title:         "Helechos Colgantes",
			Description:   "Helechos frondosos listos para colgar en interiores luminosos.",
			Image:         "/JardinInfinito.png",
			OriginalPrice: 450,
			DiscountPrice: 320,
			Category:      "Colgantes",
			Stock:         8,
			Active:        true,
		},
		{
			Title:         "Cuna de Moisés",
			Description:   "Planta de sombra con flores blancas, perfecta para oficinas.",
			Image:         "/JardinInfinito.png",
			OriginalPrice: 750,
			DiscountPrice: 580,
			Category:      "Interior",
			Stock:         6,
			Active:        true,
		},
	}

	for i := range products {
		if err := db.CreateProduct(&products[i]); err != nil {
			log.Fatalf("Failed to seed product %q: %v", products[i].Title, err)
		}
	}

	fmt.Printf("Seeded %d products.\n", len(products))
}

func cleanSessions() {
	db := openStore()

	deleted, err := db.DeleteExpiredSessions(time.Now())
	if err != nil {
		log.Fatalf("Failed to clean sessions: %v", err)
	}
	fmt.Printf("Deleted %d expired sessions.\n", deleted)
}

func wpClient() *wordpress.Client {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.WPUsername == "" || cfg.WPPassword == "" {
		log.Fatal("WP_USERNAME and WP_PASSWORD must be set for WordPress commands")
	}
	return wordpress.NewClient(cfg.WPBaseURL, cfg.WPUsername, cfg.WPPassword, slog.Default())
}

// wpPush mirrors a local product into the productos collection so the
// storefront can serve it through the catalog endpoints. With -entry it
// updates that entry in place instead of creating a new one.
func wpPush(id, entryID int) {
	db := openStore()

	product, err := db.GetProductByID(id)
	if err != nil {
		log.Fatalf("Failed to fetch product: %v", err)
	}
	if product == nil {
		log.Fatalf("Product %d not found", id)
	}

	payload := map[string]any{
		"title":   product.Title,
		"content": product.Description,
		"status":  "publish",
		"acf": map[string]any{
			"precio":            product.OriginalPrice,
			"precio_descuento":  product.DiscountPrice,
			"categoria":         product.Category,
			"stock":             product.Stock,
			"descripcion_corta": product.Description,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var entry *wordpress.Entry
	if entryID > 0 {
		entry, err = wpClient().UpdateEntry(ctx, "productos", entryID, payload)
	} else {
		entry, err = wpClient().CreateEntry(ctx, "productos", payload)
	}
	if err != nil {
		log.Fatalf("Failed to push product: %v", err)
	}

	fmt.Printf("Product '%s' pushed as WordPress entry %d.\n", product.Title, entry.ID)
}

func wpDelete(id int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := wpClient().DeleteEntry(ctx, "productos", id); err != nil {
		log.Fatalf("Failed to delete entry: %v", err)
	}
	fmt.Printf("WordPress entry %d deleted.\n", id)
}
