// Package main is the entry point for the EdgeSoul companion REPL.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/navin5447/Edgesoul/internal/config"
	"github.com/navin5447/Edgesoul/internal/emotion"
	"github.com/navin5447/Edgesoul/internal/knowledge"
	"github.com/navin5447/Edgesoul/internal/memory"
	"github.com/navin5447/Edgesoul/internal/models"
	"github.com/navin5447/Edgesoul/internal/reply"
	"github.com/navin5447/Edgesoul/internal/repository"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown: the REPL blocks on stdin, so after cancelling give
	// it a moment and exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nshutting down...")
		cancel()
		time.Sleep(500 * time.Millisecond)
		os.Exit(0)
	}()

	store, err := repository.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	var llm model.LLM
	var detector reply.EmotionDetector
	if !cfg.Offline {
		llm, err = models.NewOpenAIModel(ctx, cfg.LLMModel, &genai.ClientConfig{APIKey: cfg.OpenAIAPIKey})
		if err != nil {
			log.Fatalf("failed to create model: %v", err)
		}
		classifierLLM := llm
		if cfg.ClassifierModel != cfg.LLMModel {
			classifierLLM, err = models.NewOpenAIModel(ctx, cfg.ClassifierModel, &genai.ClientConfig{APIKey: cfg.OpenAIAPIKey})
			if err != nil {
				log.Fatalf("failed to create classifier model: %v", err)
			}
		}
		detector = emotion.NewLLMClassifier(classifierLLM)
	}

	var embedder memory.Embedder
	if cfg.GoogleAPIKey != "" {
		embedder, err = memory.NewGenAIEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
		if err != nil {
			log.Fatalf("failed to create embedder: %v", err)
		}
	}

	memoryService := memory.NewService(store.Profiles, store.Memories, store.Patterns, store.Conversations, embedder, logger)
	knowledgeEngine := knowledge.NewEngine(llm, cfg.LLMModel, logger)
	engine := reply.NewEngine(detector, knowledgeEngine, memoryService, nil, logger)

	userID := os.Getenv("EDGESOUL_USER")
	if userID == "" {
		userID = "default"
	}

	fmt.Println("EdgeSoul ready. Type a message, or ctrl-d to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		r, err := engine.GenerateReply(ctx, userID, scanner.Text())
		if err != nil {
			logger.Error("reply failed", "error", err)
			continue
		}
		fmt.Println(r.Text)
		fmt.Printf("  [strategy=%s emotion=%s conf=%.2f model=%s %.0fms]\n",
			r.Strategy, r.Emotion.Primary, r.Emotion.Confidence,
			r.Metadata.ModelUsed, float64(r.Metadata.ProcessingTime.Milliseconds()))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
}
