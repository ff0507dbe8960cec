package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedProducts(db)
	seedDrops(db)

	log.Println("Seeding completed successfully!")
}

type product struct {
	ID          string
	Name        string
	Price       string
	Description string
	Category    string
	Images      []string
	Sizes       []string
	Tags        []string
	IsNew       bool
	IsLimited   bool
}

func seedProducts(db *sql.DB) {
	products := []product{
		{
			ID:          "1",
			Name:        "RETRO JORDAN 1 HIGH",
			Price:       "25.00",
			Description: "Iconic high-top silhouette with premium leather construction. Classic colorway featuring the legendary Air Jordan design. High-top design for maximum support and timeless style. The ultimate sneaker for collectors and streetwear enthusiasts.",
			Category:    "FOOTWEAR",
			Images: []string{
				"https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1605348532760-6753d2c43329?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1608231387042-66d1773070a5?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1551107696-a4b0c5a0d9a2?auto=format&fit=crop&q=80&w=800",
			},
			Sizes: []string{"8", "9", "10", "11", "12"},
			Tags:  []string{"Sneakers", "Basketball", "Retro"},
			IsNew: true,
		},
		{
			ID:          "2",
			Name:        "SUPREME BOX LOGO HOODIE",
			Price:       "25.00",
			Description: "Premium heavyweight fleece hoodie featuring the iconic box logo. French terry cotton construction with brushed interior for ultimate comfort. Ribbed cuffs and hem, adjustable drawstring hood, and roomy front pocket. The streetwear essential that never goes out of style.",
			Category:    "FLEECE",
			Images: []string{
				"https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1620799140408-edc6dcb6d633?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1576566588028-4147f3842f27?auto=format&fit=crop&q=80&w=800",
			},
			Sizes:     []string{"M", "L", "XL", "XXL"},
			Tags:      []string{"Hoodie", "Streetwear", "Limited Edition"},
			IsLimited: true,
		},
		{
			ID:          "3",
			Name:        "TRAVIS SCOTT CACTUS JACK BEANIE",
			Price:       "25.00",
			Description: "Cactus Jack branded beanie with embroidered logo. Soft acrylic knit construction with stretch fit. One size fits most. Folded cuff design for versatile styling. The perfect accessory to complete any streetwear fit. Limited edition collaboration piece.",
			Category:    "ACCESSORIES",
			Images: []string{
				"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1521369909029-2afed882baee?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1551488831-00ddcb6c6bd3?auto=format&fit=crop&q=80&w=800",
			},
			Sizes: []string{"ONE SIZE"},
			Tags:  []string{"Beanie", "Accessories", "Collaboration"},
			IsNew: true,
		},
		{
			ID:          "4",
			Name:        "NORTH FACE RECON BACKPACK",
			Price:       "25.00",
			Description: "Durable 30L capacity backpack built for urban adventures. Water-resistant 600D recycled polyester construction. Padded laptop compartment, multiple organization pockets, and adjustable shoulder straps. Front bungee cord and top haul handle. The ultimate everyday carry for city life and beyond.",
			Category:    "ACCESSORIES",
			Images: []string{
				"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1622560480605-d83c853bc5c3?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1620799140408-edc6dcb6d633?auto=format&fit=crop&q=80&w=800",
			},
			Sizes:     []string{"ONE SIZE"},
			Tags:      []string{"Backpack", "Urban", "Utility"},
			IsLimited: true,
		},
	}

	fmt.Println("Seeding Products...")
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (id, name, price, description, category, images, sizes, tags, is_new, is_limited)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				description = EXCLUDED.description,
				category = EXCLUDED.category,
				images = EXCLUDED.images,
				sizes = EXCLUDED.sizes,
				tags = EXCLUDED.tags,
				is_new = EXCLUDED.is_new,
				is_limited = EXCLUDED.is_limited;
		`, p.ID, p.Name, p.Price, p.Description, p.Category,
			pq.Array(p.Images), pq.Array(p.Sizes), pq.Array(p.Tags), p.IsNew, p.IsLimited)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Name, err)
		}
	}
}

func seedDrops(db *sql.DB) {
	drops := []struct {
		ID       string
		Title    string
		Image    string
		Status   string
		DropsAt  time.Time
		Products []string
	}{
		{
			ID:       "drop-001",
			Title:    "SUMMER HEAT",
			Image:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&q=80&w=800",
			Status:   "live",
			DropsAt:  time.Now().AddDate(0, 0, -7),
			Products: []string{"1", "2"},
		},
		{
			ID:       "drop-002",
			Title:    "FALL ESSENTIALS",
			Image:    "https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&q=80&w=800",
			Status:   "upcoming",
			DropsAt:  time.Now().AddDate(0, 1, 0),
			Products: []string{"3", "4"},
		},
	}

	fmt.Println("Seeding Drops...")
	for _, d := range drops {
		_, err := db.Exec(`
			INSERT INTO drops (id, title, image, status, drops_at, products)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				image = EXCLUDED.image,
				status = EXCLUDED.status,
				drops_at = EXCLUDED.drops_at,
				products = EXCLUDED.products;
		`, d.ID, d.Title, d.Image, d.Status, d.DropsAt, pq.Array(d.Products))
		if err != nil {
			log.Printf("Failed to seed drop %s: %v", d.Title, err)
		}
	}
}
