package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lexkit/clauseguard/internal/analyzer"
	"github.com/lexkit/clauseguard/internal/api"
	"github.com/lexkit/clauseguard/internal/contract"
	"github.com/lexkit/clauseguard/internal/quota"
	"github.com/lexkit/clauseguard/internal/reporting"
	"github.com/lexkit/clauseguard/internal/rules"
	"github.com/lexkit/clauseguard/internal/rulesdsl"
	"github.com/lexkit/clauseguard/internal/security"
	"github.com/lexkit/clauseguard/internal/shared"
	"github.com/lexkit/clauseguard/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "analyze":
		analyzeCmd(os.Args[2:])
	case "export":
		exportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "user-add":
		userAddCmd(os.Args[2:])
	case "version":
		fmt.Println("clauseguard", contract.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `clauseguard - Contract Risk Assessment Engine

Usage:
  clauseguard analyze  --file <contract.txt> [--type nda] [--out ./reports] [--pdf] [--db ./clauseguard.db] [--config ./clauseguard.yaml]
  clauseguard export   --analysis <id> [--out ./reports] [--free] [--db ./clauseguard.db] [--config ./clauseguard.yaml]
  clauseguard diff     --base <id> --head <id> [--out ./reports] [--db ./clauseguard.db] [--config ./clauseguard.yaml]
  clauseguard serve    [--addr :8080] [--db ./clauseguard.db] [--config ./clauseguard.yaml]
  clauseguard user-add --username <name> --password <pw> [--role viewer] [--tier free] [--db ./clauseguard.db]
  clauseguard version
`)
}

// buildAnalyzer assembles the registry (baseline + config overrides +
// YAML rule packs) and the analyzer over it.
func buildAnalyzer(cfg shared.Config) (*analyzer.Analyzer, error) {
	settings := rules.SettingsFromConfig(cfg.Rules.Weights, cfg.Rules.Disabled)
	reg := rules.NewBaseline(settings)
	for _, pack := range cfg.Rules.Packs {
		n, err := rulesdsl.LoadAndRegister(pack, reg)
		if err != nil {
			return nil, fmt.Errorf("rule pack %s: %w", pack, err)
		}
		slog.Info("rule pack loaded", "path", pack, "rules", n)
	}
	return analyzer.New(reg), nil
}

func openDB(path string) *storage.DB {
	db, err := storage.OpenSQLite(path)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	return db
}

func analyzeCmd(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	filePath := fs.String("file", "", "Path to contract text file")
	ctype := fs.String("type", "", "Contract type label (nda, msa, employment, ...)")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	pdfOut := fs.Bool("pdf", false, "Also write a PDF report")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "analyze: --file is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "analyze: cannot create out dir:", err)
		os.Exit(1)
	}

	text, err := contract.ReadFile(*filePath)
	if err != nil {
		slog.Error("read contract", "err", err)
		os.Exit(1)
	}

	an, err := buildAnalyzer(cfg)
	if err != nil {
		slog.Error("analyzer setup", "err", err)
		os.Exit(1)
	}
	res, err := an.Analyze(text, *ctype)
	if err != nil {
		slog.Error("analyze", "err", err)
		os.Exit(1)
	}
	res.ID = uuid.NewString()
	res.CreatedAt = time.Now().UTC()

	db := openDB(*dbPath)
	defer db.Close()
	if err := db.SaveAnalysis(&res, text); err != nil {
		slog.Error("db save error", "err", err)
		os.Exit(1)
	}

	jsonPath, _ := reporting.WriteJSON(&res, *outDir)
	pdfPath := ""
	if *pdfOut {
		doc := reporting.BuildDocument(&res, res.CreatedAt)
		b, err := reporting.WritePDF(doc, text, false)
		if err != nil {
			slog.Error("pdf render error", "err", err)
			os.Exit(1)
		}
		pdfPath = filepath.Join(*outDir, reporting.Filename(res.ContractType, res.CreatedAt))
		if err := os.WriteFile(pdfPath, b, 0o644); err != nil {
			slog.Error("pdf write error", "err", err)
			os.Exit(1)
		}
	}

	slog.Info("analyze complete",
		"analysis", res.ID,
		"risk", res.OverallRisk,
		"level", res.RiskLevel,
		"confidence", res.Confidence,
		"json", jsonPath,
		"db", filepath.Clean(*dbPath),
	)
	doc := reporting.BuildDocument(&res, res.CreatedAt)
	fmt.Print(doc.PlainText())
	fmt.Printf("\nAnalyze OK\n  Analysis: %s\n  JSON: %s\n", res.ID, jsonPath)
	if pdfPath != "" {
		fmt.Printf("  PDF: %s\n", pdfPath)
	}
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	analysisID := fs.String("analysis", "", "Analysis ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	free := fs.Bool("free", false, "Render the free-tier (watermarked) artifact")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *analysisID == "" {
		fmt.Fprintln(os.Stderr, "export: --analysis is required")
		os.Exit(2)
	}

	db := openDB(*dbPath)
	defer db.Close()

	res, text, err := db.LoadAnalysis(*analysisID)
	if err != nil {
		slog.Error("load analysis error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	doc := reporting.BuildDocument(&res, now)
	b, err := reporting.WritePDF(doc, text, *free)
	if err != nil {
		slog.Error("pdf render error", "err", err)
		os.Exit(1)
	}
	path := filepath.Join(*outDir, reporting.Filename(res.ContractType, now))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		slog.Error("pdf write error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Export OK\n  Analysis: %s\n  PDF: %s\n", res.ID, path)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base analysis ID")
	head := fs.String("head", "", "Head analysis ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}

	db := openDB(*dbPath)
	defer db.Close()

	br, _, err := db.LoadAnalysis(*base)
	if err != nil {
		slog.Error("load base analysis error", "err", err)
		os.Exit(1)
	}
	hr, _, err := db.LoadAnalysis(*head)
	if err != nil {
		slog.Error("load head analysis error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	rep := reporting.Diff(&br, &hr)
	path, err := reporting.WriteDiffJSON(rep, *outDir)
	if err != nil {
		slog.Error("diff write error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Diff OK\n  Risk delta: %+d\n  New: %d  Resolved: %d  Unchanged: %d\n  %s\n",
		rep.RiskDelta, len(rep.New), len(rep.Resolved), len(rep.Unchanged), path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db := openDB(*dbPath)
	defer db.Close()

	an, err := buildAnalyzer(cfg)
	if err != nil {
		slog.Error("analyzer setup", "err", err)
		os.Exit(1)
	}

	limits := quota.DefaultLimits()
	limits[quota.TierFree] = cfg.Quota.FreeDailyLimit
	gate := quota.New(db, limits)

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Analyzer:        an,
		Gate:            gate,
		Logger:          logger,
		SessionDuration: time.Duration(cfg.API.SessionTTLHours) * time.Hour,
	}

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("serving", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func userAddCmd(args []string) {
	fs := flag.NewFlagSet("user-add", flag.ExitOnError)
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	role := fs.String("role", "viewer", "Role: viewer|admin")
	tier := fs.String("tier", "free", "Tier: free|pro|enterprise")
	dbPath := fs.String("db", "./clauseguard.db", "SQLite database path")
	_ = fs.Parse(args)

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "user-add: --username and --password are required")
		os.Exit(2)
	}

	db := openDB(*dbPath)
	defer db.Close()

	hash, err := security.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "user-add: hash error:", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, *role, *tier)
	if err != nil {
		fmt.Fprintln(os.Stderr, "user-add: db error:", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n  Tier: %s\n", id, *username, *role, *tier)
}
