// sentinel-analyze runs the evaluation pipeline offline over a JSONL file of
// app snapshots, without Redis or a generation service. Answers come from the
// template path.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/explain"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/hypothesis"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/risk"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

func main() {
	input := flag.String("input", "snapshots.jsonl", "Snapshot JSONL input path")
	verdictsOut := flag.String("verdicts", "output/verdicts.jsonl", "Verdict JSONL output path")
	incidentsOut := flag.String("incidents", "output/incidents.jsonl", "Incident JSONL output path")
	answersOut := flag.String("answers", "output/answers.jsonl", "Answer JSONL output path")
	profile := flag.String("profile", "", "Profile override: SYSTEM or USER (default: derived per app)")
	flag.Parse()

	os.Exit(run(*input, *verdictsOut, *incidentsOut, *answersOut, risk.Profile(*profile)))
}

func run(input, verdictsOut, incidentsOut, answersOut string, override risk.Profile) int {
	snapshots, invalid, err := loadSnapshots(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load snapshots: %v\n", err)
		return 1
	}

	explainer := explain.New(explain.Config{})
	ctx := context.Background()

	verdicts := make([]models.Verdict, 0, len(snapshots))
	var incidents []models.Incident
	var answers []models.Answer
	for _, snap := range snapshots {
		verdict := risk.Evaluate(risk.Input{
			Package:         snap.Package,
			Trust:           snap.Trust,
			Findings:        snap.Findings,
			IsSystemApp:     snap.IsSystemApp,
			Granted:         snap.Granted,
			Category:        snap.Category,
			Enablement:      snap.Enablement,
			InstallClass:    snap.InstallClass,
			ProfileOverride: override,
		})
		verdicts = append(verdicts, verdict)

		for _, incident := range hypothesis.ResolveAll(snap.Events) {
			incidents = append(incidents, incident)
			answer, _ := explainer.Explain(ctx, incident)
			answers = append(answers, answer)
		}
	}

	if err := writeJSONLines(verdictsOut, verdicts); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write verdicts: %v\n", err)
		return 1
	}
	if err := writeJSONLines(incidentsOut, incidents); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write incidents: %v\n", err)
		return 1
	}
	if err := writeJSONLines(answersOut, answers); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write answers: %v\n", err)
		return 1
	}

	fmt.Printf("analyzed snapshots=%d invalid=%d verdicts=%d incidents=%d answers=%d\n", len(snapshots), invalid, len(verdicts), len(incidents), len(answers))
	return 0
}

func loadSnapshots(path string) ([]models.AppSnapshot, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var snapshots []models.AppSnapshot
	invalid := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var snap models.AppSnapshot
		if err := json.Unmarshal(line, &snap); err != nil || snap.Package == "" {
			invalid++
			continue
		}
		snapshots = append(snapshots, snap)
	}
	if err := scanner.Err(); err != nil {
		return nil, invalid, err
	}
	return snapshots, invalid, nil
}

func writeJSONLines[T any](path string, rows []T) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, item := range rows {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
