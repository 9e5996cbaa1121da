// Seeds a demo pre-order form snapshot into MongoDB, so the server can run
// locally without a reachable forms provider (the form service falls back to
// the persisted snapshot).
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"preorder/internal/model"
	"preorder/internal/repository"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("preorder")
	formRepo := repository.NewFormRepo(db)

	schema := &model.FormSchema{
		ID:    "demo-preorder",
		Title: "週年慶預購單",
		Items: []model.Item{
			{
				Kind:  model.ItemQuestion,
				Title: "經典項鍊 $1000",
				Question: &model.Question{
					ID:      "100",
					Title:   "經典項鍊 $1000",
					Kind:    model.QuestionSingleChoice,
					Options: []string{"經典項鍊 $1000"},
				},
			},
			{
				Kind:  model.ItemQuestion,
				Title: "手鍊（款式擇一）",
				Question: &model.Question{
					ID:      "200",
					Title:   "手鍊（款式擇一）",
					Kind:    model.QuestionDropdown,
					Options: []string{"細版 $380", "粗版 $500"},
				},
			},
			{
				Kind:  model.ItemGroup,
				Title: "耳環加購 $250",
				Questions: []model.Question{
					{ID: "300", Kind: model.QuestionMultiChoice, Options: []string{"金色", "銀色"}},
					{ID: "301", Kind: model.QuestionMultiChoice, Options: []string{"大", "小"}},
				},
			},
			{Kind: model.ItemPageBreak},
			{
				Kind:  model.ItemQuestion,
				Title: "【贈品】滿額贈（滿1000*1、2000*2、3500*3）",
				Question: &model.Question{
					ID:      "900",
					Title:   "【贈品】滿額贈（滿1000*1、2000*2、3500*3）",
					Kind:    model.QuestionMultiChoice,
					Options: []string{"小卡", "貼紙", "鑰匙圈"},
				},
			},
			{
				Kind:  model.ItemQuestion,
				Title: "收件人 Email",
				Question: &model.Question{
					ID:   "400",
					Kind: model.QuestionText,
				},
			},
		},
	}

	if err := formRepo.Upsert(ctx, schema); err != nil {
		log.Fatalf("Failed to seed form: %v", err)
	}

	fmt.Printf("Seeded form %q (%d items)\n", schema.ID, len(schema.Items))
}
