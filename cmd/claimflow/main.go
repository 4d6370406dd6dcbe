package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"claimflow/internal/domain"
	"claimflow/internal/gateway"
	"claimflow/internal/usecase"
)

// Per-client column presets for the known claim-status export layouts.
var clientPresets = map[string]domain.ColumnLetters{
	"solis":   {CleanAge: "Q", ClaimStatus: "I", ClaimNumber: "C", Payer: "A", NetworkStatus: "V", DSNP: "Y", ClaimType: "B", TotalCharges: "T", Notes: "AA"},
	"liberty": {CleanAge: "R", ClaimStatus: "I", ClaimNumber: "C", Payer: "A", NetworkStatus: "V", DSNP: "Y", ClaimType: "B", TotalCharges: "T", Notes: "AA"},
	"secur":   {CleanAge: "Q", ClaimStatus: "I", ClaimNumber: "C", Payer: "A", NetworkStatus: "V", DSNP: "Y", ClaimType: "D", TotalCharges: "T", Notes: "AA"},
	"csh":     {CleanAge: "R", ClaimStatus: "I", ClaimNumber: "C", Payer: "A", NetworkStatus: "U", DSNP: "Y", ClaimType: "B", TotalCharges: "T", Notes: "AA"},
}

func main() {
	// A .env file can pre-populate the CLAIMFLOW_* defaults; absence is fine.
	_ = godotenv.Load()

	client := flag.String("client", envOr("CLAIMFLOW_CLIENT", ""), "Client preset name (solis, liberty, secur, csh) (required)")
	todayFile := flag.String("today", envOr("CLAIMFLOW_TODAY", ""), "Path to today's claim-status export CSV (required)")
	yesterdayFile := flag.String("yesterday", envOr("CLAIMFLOW_YESTERDAY", ""), "Path to yesterday's report CSV (optional)")
	assignmentFile := flag.String("assignments", envOr("CLAIMFLOW_ASSIGNMENTS", ""), "Path to the assignment file CSV (optional)")
	columnsStr := flag.String("columns", envOr("CLAIMFLOW_COLUMNS", ""), "Column-letter overrides, e.g. cleanAge=Q,notes=AA (optional)")
	flag.Parse()

	if *client == "" || *todayFile == "" {
		fmt.Println("Error: the -client and -today flags are required.")
		flag.Usage()
		os.Exit(1)
	}

	letters, ok := clientPresets[strings.ToLower(*client)]
	if !ok && *columnsStr == "" {
		log.Fatalf("Unknown client %q and no -columns override given", *client)
	}
	if err := applyColumnOverrides(&letters, *columnsStr); err != nil {
		log.Fatalf("Error parsing -columns: %v", err)
	}

	csvRepo := gateway.NewCSVTabularRepository()
	reportUseCase := usecase.NewReportUseCase(csvRepo)

	report, err := reportUseCase.Run(context.Background(), usecase.RunRequest{
		Client:         *client,
		TodayPath:      *todayFile,
		YesterdayPath:  *yesterdayFile,
		AssignmentPath: *assignmentFile,
		Columns:        letters,
	})
	if err != nil {
		log.Fatalf("Report run failed: %v", err)
	}

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON report: %v", err)
	}
	fmt.Println(string(output))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// applyColumnOverrides merges "field=LETTER" pairs over the preset letters.
func applyColumnOverrides(letters *domain.ColumnLetters, overrides string) error {
	if overrides == "" {
		return nil
	}
	fields := map[string]*string{
		"cleanAge":      &letters.CleanAge,
		"claimStatus":   &letters.ClaimStatus,
		"claimNumber":   &letters.ClaimNumber,
		"payer":         &letters.Payer,
		"networkStatus": &letters.NetworkStatus,
		"dsnp":          &letters.DSNP,
		"claimType":     &letters.ClaimType,
		"totalCharges":  &letters.TotalCharges,
		"notes":         &letters.Notes,
	}
	for _, pair := range strings.Split(overrides, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return fmt.Errorf("override %q is not in field=LETTER form", pair)
		}
		dst, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown column field %q", key)
		}
		*dst = value
	}
	return nil
}
