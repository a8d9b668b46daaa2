package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"diet-planner/internal/api"
	"diet-planner/internal/app"
	"diet-planner/internal/catalog"
	"diet-planner/internal/config"
	"diet-planner/internal/database"
	"diet-planner/internal/logger"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/selector"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	switch os.Args[1] {
	case "plan":
		runPlan(ctx, cfg, appLog, os.Args[2:])
	case "recommend":
		runRecommend(ctx, cfg, appLog, os.Args[2:])
	case "import-html":
		runImportHTML(ctx, cfg, appLog, os.Args[2:])
	case "seed-db":
		runSeedDB(ctx, cfg, appLog, os.Args[2:])
	case "metrics-cleanup":
		runMetricsCleanup(ctx, cfg, appLog, os.Args[2:])
	case "token":
		runToken(cfg, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: diet-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Build a daily meal plan for a patient")
	fmt.Println("  recommend          List the best foods for a patient")
	fmt.Println("  import-html        Extract a food table from an HTML page")
	fmt.Println("  seed-db            Load a CSV catalog into the SQLite foods table")
	fmt.Println("  metrics-cleanup    Remove old metric records")
	fmt.Println("  token              Issue an API bearer token")
}

// requestFlags registers the patient flags shared by plan and recommend.
func requestFlags(fs *flag.FlagSet) func() app.PlanRequest {
	glucose := fs.Float64("glucose", 0, "Fasting glucose in mg/dL")
	bmi := fs.Float64("bmi", 0, "Body mass index (0 = unknown)")
	age := fs.Int("age", 0, "Age in years")
	riskLevel := fs.String("risk", "", "Risk level: Low, Moderate or High")
	probability := fs.Float64("probability", -1, "Classifier probability used when -risk is empty")
	diet := fs.String("diet", "", "Diet type (defaults to DEFAULT_DIET)")
	highRisk := fs.Bool("high-risk", false, "Patient was classified diabetic")

	return func() app.PlanRequest {
		req := app.PlanRequest{Risk: *riskLevel, Diet: *diet}
		req.Patient.Glucose = *glucose
		req.Patient.BMI = *bmi
		req.Patient.Age = *age
		req.Patient.HighRisk = *highRisk
		if *probability >= 0 {
			req.Probability = probability
		}
		return req
	}
}

func runPlan(ctx context.Context, cfg *config.Config, appLog *logger.Logger, args []string) {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	request := requestFlags(planCmd)
	advice := planCmd.Bool("advice", false, "Ask Gemini for guidance on the plan")
	asJSON := planCmd.Bool("json", false, "Print the plan as JSON")
	planCmd.Parse(args)

	rt, err := app.Bootstrap(ctx, cfg, appLog)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer rt.Close()

	req := request()
	req.WithAdvice = *advice
	plan, err := rt.App.MealPlan(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate plan: %v", err)
	}

	if *asJSON {
		printJSON(plan)
		return
	}
	printPlan(plan)
}

func runRecommend(ctx context.Context, cfg *config.Config, appLog *logger.Logger, args []string) {
	recCmd := flag.NewFlagSet("recommend", flag.ExitOnError)
	count := recCmd.Int("count", planner.DefaultRecommendations, "Number of foods to list")
	request := requestFlags(recCmd)
	asJSON := recCmd.Bool("json", false, "Print the list as JSON")
	recCmd.Parse(args)

	rt, err := app.Bootstrap(ctx, cfg, appLog)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer rt.Close()

	req := request()
	req.Count = *count
	recs, err := rt.App.Recommend(ctx, req)
	if err != nil {
		log.Fatalf("Failed to recommend: %v", err)
	}

	if *asJSON {
		printJSON(recs)
		return
	}
	fmt.Println("=== RECOMMENDED FOODS ===")
	for i, r := range recs {
		fmt.Printf("%2d. %-32s %4d kcal  GI %3d  score %.2f\n", i+1, r.Title, r.Calories, r.GIIndex, r.Score)
	}
}

func runImportHTML(ctx context.Context, cfg *config.Config, appLog *logger.Logger, args []string) {
	importCmd := flag.NewFlagSet("import-html", flag.ExitOnError)
	url := importCmd.String("url", "", "Page to fetch")
	file := importCmd.String("file", "", "Local HTML file to read instead of -url")
	out := importCmd.String("out", "", "Write the foods as CSV to this path")
	toDB := importCmd.Bool("db", false, "Replace the SQLite foods table with the imported foods")
	importCmd.Parse(args)

	var (
		foods   []catalog.FoodItem
		skipped int
		err     error
	)
	switch {
	case *url != "":
		foods, skipped, err = catalog.FetchHTML(ctx, *url)
	case *file != "":
		f, openErr := os.Open(*file)
		if openErr != nil {
			log.Fatalf("Failed to open %s: %v", *file, openErr)
		}
		defer f.Close()
		foods, skipped, err = catalog.ImportHTML(f)
	default:
		log.Fatal("import-html needs -url or -file")
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	appLog.Info("Imported foods", "foods", len(foods), "skipped_rows", skipped)

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		if err := catalog.WriteCSV(f, foods); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		fmt.Printf("Wrote %d foods to %s.\n", len(foods), *out)
	}
	if *toDB {
		seed(ctx, cfg, appLog, foods)
	}
	if *out == "" && !*toDB {
		if err := catalog.WriteCSV(os.Stdout, foods); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
	}
}

func runSeedDB(ctx context.Context, cfg *config.Config, appLog *logger.Logger, args []string) {
	seedCmd := flag.NewFlagSet("seed-db", flag.ExitOnError)
	csvPath := seedCmd.String("csv", "", "CSV catalog to load (defaults to the built-in dataset)")
	seedCmd.Parse(args)

	var src catalog.Source = catalog.EmbeddedSource{}
	if *csvPath != "" {
		src = catalog.CSVSource{Path: *csvPath}
	}
	foods, err := src.Foods(ctx)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}
	appLog.Info("Read catalog", "foods", len(foods))
	seed(ctx, cfg, appLog, foods)
}

func seed(ctx context.Context, cfg *config.Config, appLog *logger.Logger, foods []catalog.FoodItem) {
	db, err := database.NewDB(cfg.DatabasePath, appLog)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := catalog.NewRepository(db.SQL).ReplaceAll(ctx, foods); err != nil {
		log.Fatalf("Failed to seed foods: %v", err)
	}
	fmt.Printf("Loaded %d foods into %s.\n", len(foods), cfg.DatabasePath)
}

func runMetricsCleanup(ctx context.Context, cfg *config.Config, appLog *logger.Logger, args []string) {
	cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
	cleanupCmd.Parse(args)

	db, err := database.NewDB(cfg.DatabasePath, appLog)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	mStore := metrics.NewStore(db.SQL)
	defer mStore.Close()

	affected, err := mStore.Cleanup(ctx, *days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Successfully removed %d old metric records.\n", affected)
}

func runToken(cfg *config.Config, args []string) {
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	subject := tokenCmd.String("subject", "cli", "Token subject")
	ttl := tokenCmd.Duration("ttl", 24*time.Hour, "Token lifetime")
	tokenCmd.Parse(args)

	token, err := api.IssueToken(cfg.APIJWTSecret, *subject, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token (is API_JWT_SECRET set?): %v", err)
	}
	fmt.Println(token)
}

func printPlan(plan planner.DailyPlan) {
	fmt.Printf("=== DAILY MEAL PLAN (%s risk, %s) ===\n", plan.RiskLevel, plan.DietType)
	for _, slot := range selector.Slots {
		fmt.Printf("\n%s:\n", slot)
		items := plan.Meals[slot]
		if len(items) == 0 {
			fmt.Println("  (no suitable food)")
		}
		for _, item := range items {
			fmt.Printf("  - %s (%d kcal, %.1fg protein, %.1fg fiber, GI %d, %s)\n",
				item.Title, item.Calories, item.Protein, item.Fiber, item.GIIndex, item.Weight)
		}
	}

	n := plan.Nutrition
	fmt.Println("\n=== DAILY NUTRITION ===")
	fmt.Printf("Calories: %d kcal\nProtein:  %.1f g\nFiber:    %.1f g\nAvg GI:   %.1f\n", n.Calories, n.Protein, n.Fiber, n.AvgGI)

	if plan.Advice != "" {
		fmt.Println("\n=== ADVICE ===")
		fmt.Println(plan.Advice)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
