// Command seeder loads a starter catalog of PC components with demo
// store prices. It is intended for local development and demo
// environments, not production.
//
// Flags:
//
//	--dry-run  print what would be inserted without writing to DB
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	productrepo "armatupc/internal/adapter/postgres/product"
	"armatupc/internal/domain"
)

type seedProduct struct {
	name     string
	brand    string
	category domain.Category
	price    int64
	specs    map[string]string
}

var starterCatalog = []seedProduct{
	{"AMD Ryzen 5 7600", "AMD", domain.CategoryCPU, 219990, map[string]string{"cores": "6", "socket": "AM5"}},
	{"AMD Ryzen 7 9800X3D", "AMD", domain.CategoryCPU, 599990, map[string]string{"cores": "8", "socket": "AM5"}},
	{"Intel Core i5-14600K", "Intel", domain.CategoryCPU, 329990, map[string]string{"cores": "14", "socket": "LGA1700"}},
	{"ASUS PRIME B650M-A", "ASUS", domain.CategoryMotherboard, 129990, map[string]string{"socket": "AM5", "form_factor": "mATX"}},
	{"MSI PRO Z790-P", "MSI", domain.CategoryMotherboard, 199990, map[string]string{"socket": "LGA1700", "form_factor": "ATX"}},
	{"Kingston Fury Beast 16GB DDR5-6000", "Kingston", domain.CategoryRAM, 54990, map[string]string{"capacity": "16GB", "speed": "6000MHz"}},
	{"Corsair Vengeance 32GB DDR5-6000", "Corsair", domain.CategoryRAM, 109990, map[string]string{"capacity": "32GB", "speed": "6000MHz"}},
	{"NVIDIA GeForce RTX 4070 Super", "NVIDIA", domain.CategoryGPU, 649990, map[string]string{"vram": "12GB"}},
	{"AMD Radeon RX 7800 XT", "AMD", domain.CategoryGPU, 549990, map[string]string{"vram": "16GB"}},
	{"WD Black SN850X 1TB", "Western Digital", domain.CategoryStorage, 99990, map[string]string{"capacity": "1TB", "interface": "NVMe"}},
	{"Samsung 990 EVO 2TB", "Samsung", domain.CategoryStorage, 169990, map[string]string{"capacity": "2TB", "interface": "NVMe"}},
	{"Corsair RM750e 750W Gold", "Corsair", domain.CategoryPowerSupply, 94990, map[string]string{"wattage": "750W", "rating": "80+ Gold"}},
	{"Cooler Master MWE 650W Bronze", "Cooler Master", domain.CategoryPowerSupply, 54990, map[string]string{"wattage": "650W", "rating": "80+ Bronze"}},
	{"Lian Li Lancool 216", "Lian Li", domain.CategoryCase, 89990, map[string]string{"form_factor": "ATX"}},
	{"NZXT H5 Flow", "NZXT", domain.CategoryCase, 79990, map[string]string{"form_factor": "ATX"}},
	{"Thermalright Peerless Assassin 120", "Thermalright", domain.CategoryCooling, 34990, map[string]string{"type": "air"}},
}

// component builds the catalog row for one seed entry. The repository
// inserts IDs verbatim, so a fresh one is assigned here.
func (p seedProduct) component() *domain.Component {
	slug := domain.Slugify(p.name)
	return &domain.Component{
		ID:       uuid.New(),
		Name:     p.name,
		Brand:    p.brand,
		Category: p.category,
		Slug:     slug,
		Price:    p.price,
		Stock:    10,
		Specs:    p.specs,
		Prices: []domain.PriceEntry{
			{StoreID: "store-1", Price: p.price, URL: "https://pcfactory.cl/p/" + slug},
			{StoreID: "store-2", Price: p.price + p.price/20, URL: "https://spdigital.cl/p/" + slug},
		},
	}
}

func main() {
	dryRun := flag.Bool("dry-run", false, "print what would be inserted without writing to DB")
	flag.Parse()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := productrepo.New(pool)

	inserted, skipped := 0, 0
	for _, p := range starterCatalog {
		if *dryRun {
			fmt.Printf("would insert %q (%s)\n", p.name, p.category)
			continue
		}

		if _, err := repo.Create(ctx, p.component()); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			log.Fatalf("insert %q: %v", p.name, err)
		}
		inserted++
	}

	if *dryRun {
		fmt.Printf("dry run: %d products in starter catalog\n", len(starterCatalog))
		return
	}
	fmt.Printf("Seeded %d products (%d already present).\n", inserted, skipped)
}
