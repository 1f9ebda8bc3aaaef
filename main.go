package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/puntoventa/backend/assistant"
	"github.com/puntoventa/backend/assistant/dispatch"
	llmx "github.com/puntoventa/backend/assistant/llm"
	configx "github.com/puntoventa/backend/pkg/config"
	_ "github.com/puntoventa/backend/pkg/logger/autoload"
	openrouterx "github.com/puntoventa/backend/pkg/openrouter"
	storex "github.com/puntoventa/backend/store"
)

type AppConfig struct {
	TenantID string `envconfig:"TENANT_ID" split_words:"true" required:"true"`
	UserID   string `envconfig:"USER_ID" split_words:"true" required:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("APP")

	storeCfg := configx.MustNew[storex.Config]("DB")
	businessStore, err := storex.NewPostgresStore(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open business store")
	}

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	client := openrouterx.MustNew(*openRouterCfg)

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	service := assistant.NewService(businessStore, dispatch.New(client, *llmCfg))

	log.Info().Str("model", llmCfg.ModelName()).Str("tenant_id", appCfg.TenantID).
		Msg("assistant service ready")

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		reply := service.ProcessUserQuery(context.Background(), scanner.Text(), appCfg.TenantID, appCfg.UserID)
		fmt.Println(reply)
		fmt.Print("> ")
	}
}
