package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"some-planner/pkg/config"
	"some-planner/pkg/database"
	"some-planner/pkg/logger"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/model"
	"some-planner/services/planner/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var hash string
	flag.StringVar(&hash, "hash", "", "Print the bcrypt hash of a password for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if hash != "" {
		out, err := bcrypt.GenerateFromPassword([]byte(hash), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	defer database.Close(db)

	if cfg.DBDriver == config.DriverSQLite {
		if err := db.AutoMigrate(model.Models()...); err != nil {
			log.Error("Failed to migrate database: %v", err)
			panic(err)
		}
	}

	if err := seedDatabase(context.Background(), db, time.Now(), log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func strPtr(s string) *string { return &s }

// seedDatabase inserts demo shops, templates and a month of posts around
// now. It refuses to run against a database that already has shops.
func seedDatabase(ctx context.Context, db *gorm.DB, now time.Time, log *logger.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.ShopModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count shops: %w", err)
	}
	if count > 0 {
		log.Info("Database already has %d shops, skipping seed", count)
		return nil
	}

	shopRepo := persistent.NewShopRepository(db)
	templateRepo := persistent.NewTemplateRepository(db)
	postRepo := persistent.NewPostRepository(db)

	shops := []*entity.Shop{
		{Name: "Acme Bakery", ContactName: strPtr("Anna Meyer"), ContactEmail: strPtr("anna@acme.example"), Active: true},
		{Name: "Corner Florist", ContactName: strPtr("Ben Ortiz"), ContactPhone: strPtr("+49 30 1234567"), Active: true},
		{Name: "Old Bookshop", Active: false},
	}
	for _, shop := range shops {
		if err := shopRepo.Create(ctx, shop); err != nil {
			return fmt.Errorf("create shop %s: %w", shop.Name, err)
		}
	}

	templates := []*entity.Template{
		{
			Name:            "Product spotlight",
			CaptionTemplate: strPtr("Fresh today at {shop}: {product}!"),
			MediaGuide:      strPtr("One close-up photo, natural light"),
			Active:          true,
		},
		{
			Name:            "Behind the scenes reel",
			CaptionTemplate: strPtr("A look behind the counter at {shop}"),
			MediaGuide:      strPtr("15-30s vertical video"),
			Active:          true,
		},
	}
	for _, template := range templates {
		if err := templateRepo.Create(ctx, template); err != nil {
			return fmt.Errorf("create template %s: %w", template.Name, err)
		}
	}

	statuses := []entity.PostStatus{entity.StatusPublished, entity.StatusReady, entity.StatusDraft}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		postType := entity.PostTypePost
		if i%3 == 2 {
			postType = entity.PostTypeReel
		}
		shopID := shops[i%2].ID
		post := &entity.Post{
			Date:    first.AddDate(0, 0, i*2).Format(entity.DateLayout),
			Type:    postType,
			ShopID:  &shopID,
			Status:  statuses[i%len(statuses)],
			Caption: strPtr(fmt.Sprintf("Seed post %d", i+1)),
		}
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("create post %d: %w", i+1, err)
		}
	}

	log.Info("Seeded %d shops, %d templates and 12 posts", len(shops), len(templates))
	return nil
}
