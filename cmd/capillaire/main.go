package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"capillaire-ai/internal/advisor"
	"capillaire-ai/internal/app"
	"capillaire-ai/internal/config"
	"capillaire-ai/internal/diagnosis"
	"capillaire-ai/internal/llm"
	"capillaire-ai/internal/metrics"
	"capillaire-ai/internal/notify"
	"capillaire-ai/internal/plan"
	"capillaire-ai/internal/ritual"
	"capillaire-ai/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	kv, err := storage.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer kv.Close()

	metricsStore, err := metrics.NewStore(kv.DB())
	if err != nil {
		log.Fatalf("Failed to initialize metrics store: %v", err)
	}

	planStore := plan.NewStore(kv)

	// The CLI has no push channel, so reminders stay unsupported here.
	application := app.NewApp(
		plan.NewGenerator(geminiClient.PlanGenerator()),
		planStore,
		advisor.NewAdvisor(geminiClient.TipGenerator(), metricsStore),
		advisor.NewAssistant(geminiClient, metricsStore),
		ritual.NewChecklist(kv),
		notify.NewService(kv, nil, planStore),
		metricsStore,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		goal := generateCmd.String("objetivo", string(diagnosis.GoalHydration), "Objetivo principal")
		hair := generateCmd.String("cabelo", string(diagnosis.HairWavy), "Tipo de cabelo")
		scalp := generateCmd.String("couro", string(diagnosis.ScalpNormal), "Tipo de couro cabeludo")
		porosity := generateCmd.String("porosidade", string(diagnosis.PorosityMedium), "Porosidade dos fios")
		chemicals := generateCmd.Bool("quimica", false, "Tem química nos fios")
		budget := generateCmd.String("orcamento", string(diagnosis.BudgetLow), "Orçamento para produtos")
		generateCmd.Parse(os.Args[2:])

		d := diagnosis.Diagnosis{
			MainGoal:     diagnosis.MainGoal(*goal),
			HairType:     diagnosis.HairType(*hair),
			ScalpType:    diagnosis.ScalpType(*scalp),
			Porosity:     diagnosis.Porosity(*porosity),
			HasChemicals: *chemicals,
			BudgetLevel:  diagnosis.BudgetLevel(*budget),
		}

		p, err := application.GeneratePlan(ctx, d)
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		fmt.Printf("Plano criado: %s\n\n%s\n", p.ID, p.Summary)
	case "schedule":
		p := application.CurrentPlan()
		if p == nil {
			log.Fatal("Nenhum cronograma ativo. Rode 'generate' primeiro.")
		}
		current := plan.CurrentDay(p, time.Now())
		for _, t := range p.Tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			pointer := ""
			if t.Day == current {
				pointer = "  <- hoje"
			}
			fmt.Printf("[%s] Dia %2d (%s): %s%s\n", mark, t.Day, t.Category, t.Title, pointer)
		}
	case "toggle":
		toggleCmd := flag.NewFlagSet("toggle", flag.ExitOnError)
		day := toggleCmd.Int("dia", 0, "Dia a marcar ou desmarcar")
		toggleCmd.Parse(os.Args[2:])

		updated, err := application.ToggleTask(*day)
		if err != nil {
			log.Fatalf("Toggle failed: %v", err)
		}
		task, _ := updated.Task(*day)
		fmt.Printf("Dia %d: concluído=%v\n", task.Day, task.Completed)
	case "progress":
		prog := application.Progress(time.Now())
		fmt.Printf("Dia atual: %d/%d\n", prog.CurrentDay, plan.Length)
		fmt.Printf("Concluídas: %d (%d%%)\n", prog.CompletedCount, prog.Percent)
		if prog.TodayTask != nil {
			fmt.Printf("Hoje: %s (%s)\n", prog.TodayTask.Title, prog.TodayTask.Category)
		}
	case "tip":
		if len(os.Args) < 3 {
			log.Fatal("Usage: capillaire tip <problema>")
		}
		fmt.Println(application.Tip(ctx, os.Args[2]))
	case "clear":
		if err := application.Reset(); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		fmt.Println("Cronograma e preferências removidos.")
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: capillaire <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  generate         Create a 30-day plan from diagnosis flags")
	fmt.Println("  schedule         Print the full schedule")
	fmt.Println("  toggle -dia N    Toggle one day's completion")
	fmt.Println("  progress         Show progress metrics")
	fmt.Println("  tip <problema>   Get a quick natural-care tip")
	fmt.Println("  clear            Delete the plan and preferences")
	fmt.Println("  metrics-cleanup  Prune old LLM usage records")
}
