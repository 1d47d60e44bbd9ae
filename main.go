package main

import (
	"context"

	"github.com/rs/zerolog/log"

	enginex "github.com/vyapaarai/insight-engine/engine"
	agentsx "github.com/vyapaarai/insight-engine/engine/agents"
	aggregatorx "github.com/vyapaarai/insight-engine/engine/aggregator"
	classifierx "github.com/vyapaarai/insight-engine/engine/classifier"
	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	llmx "github.com/vyapaarai/insight-engine/engine/llm"
	promptx "github.com/vyapaarai/insight-engine/engine/prompt"
	routerx "github.com/vyapaarai/insight-engine/engine/router"
	configx "github.com/vyapaarai/insight-engine/pkg/config"
	_ "github.com/vyapaarai/insight-engine/pkg/logger/autoload"
	openrouterx "github.com/vyapaarai/insight-engine/pkg/openrouter"
	speechx "github.com/vyapaarai/insight-engine/speech"
	storex "github.com/vyapaarai/insight-engine/store"
)

func main() {
	ctx := context.Background()

	storeCfg := configx.MustNew[storex.Config]("POSTGRES")
	db, err := storex.Open(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open postgres")
	}
	defer db.Close()

	pg, err := storex.NewPostgres(db)
	if err != nil {
		log.Fatal().Err(err).Msg("create store")
	}

	registry, err := agentsx.NewRegistry(pg)
	if err != nil {
		log.Fatal().Err(err).Msg("create agent registry")
	}

	prompts := promptx.LoadPromptSet()

	var (
		classifier contractx.Classifier
		summarizer contractx.Summarizer
	)

	llmCfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil || llmCfg.Validate() != nil {
		log.Warn().Msg("no model configured, running with keyword classification only")
		classifier = classifierx.NewKeywordOnly()
	} else {
		classifierModelCfg := llmCfg.ModelFor(llmx.CapabilityClassifier)
		classifierModel, err := classifierModelCfg.New(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("create classifier model")
		}
		classifier, err = classifierx.New(ctx, classifierModel, prompts.Classifier, llmCfg.TimeoutFor(llmx.CapabilityClassifier))
		if err != nil {
			log.Fatal().Err(err).Msg("create classifier")
		}

		summarizerModelCfg := llmCfg.ModelFor(llmx.CapabilitySummarizer)
		summarizerModel, err := summarizerModelCfg.New(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("create summarizer model")
		}
		summarizer, err = llmx.NewSummarizer(ctx, summarizerModel, prompts.Summarizer, llmCfg.TimeoutFor(llmx.CapabilitySummarizer))
		if err != nil {
			log.Fatal().Err(err).Msg("create summarizer")
		}
	}

	router, err := routerx.New(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("create router")
	}

	aggOpts := []aggregatorx.Option{}
	if summarizer != nil {
		aggOpts = append(aggOpts, aggregatorx.WithSummarizer(summarizer))
	}
	aggregator, err := aggregatorx.New(registry, aggOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("create aggregator")
	}

	engineOpts := []enginex.Option{}
	if llmCfg != nil && llmCfg.Validate() == nil {
		openRouterClient := openrouterx.NewClient(openrouterx.Config{
			BaseURL: llmCfg.BaseURL,
			APIKey:  llmCfg.APIKey,
		})
		if openRouterClient != nil {
			speechCfg := configx.MustNew[speechx.Config]("SPEECH")
			speech, err := speechx.New(openRouterClient, *speechCfg)
			if err != nil {
				log.Fatal().Err(err).Msg("create speech service")
			}
			engineOpts = append(engineOpts, enginex.WithSpeech(speech))
		}
	}

	eng, err := enginex.New(classifier, router, aggregator, engineOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("create engine")
	}
	_ = eng

	log.Info().Msg("insight engine ready")
}
