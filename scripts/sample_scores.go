// sample_scores.go writes the 30-intervention example dataset as an input
// sheet for rankctl, or posts it straight to a running Ranker API.
//
// Usage:
//
//	go run scripts/sample_scores.go -out Intervention_scores.xlsx
//	go run scripts/sample_scores.go -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var headers = []string{
	"Intervention",
	"Lifespan (30%)",
	"Healthspan (10%)",
	"Conservation (10%)",
	"Human Trials (20%)",
	"Safety & Tolerability (20%)",
	"Cost/Access (10%)",
}

type intervention struct {
	name   string
	scores [6]int
}

// Lifespan, Healthspan, Conservation, Human Trials, Safety, Cost/Access.
var interventions = []intervention{
	{"Spermidine", [6]int{4, 4, 5, 2, 4, 4}},
	{"Rapamycin", [6]int{4, 4, 5, 3, 3, 3}},
	{"SGLT2 inhibitors", [6]int{3, 4, 4, 4, 4, 3}},
	{"Acarbose", [6]int{3, 4, 4, 3, 3, 5}},
	{"Metformin", [6]int{2, 4, 4, 3, 5, 5}},
	{"NAD+ Restoration (NMN/NR)", [6]int{1, 3, 5, 3, 4, 3}},
	{"Glutathione Precursors", [6]int{3, 3, 4, 3, 4, 4}},
	{"Mitochondria (Urolithin A)", [6]int{2, 4, 4, 3, 4, 3}},
	{"GLP-1 agonists", [6]int{1, 4, 4, 4, 3, 2}},
	{"Anti-inflammatory", [6]int{3, 3, 4, 3, 3, 4}},
	{"Senolytics (D+Q)", [6]int{1, 4, 4, 3, 3, 2}},
	{"Fisetin", [6]int{2, 3, 4, 2, 4, 4}},
	{"Gut Microbiome Modulation", [6]int{3, 3, 4, 3, 4, 4}},
	{"L-deprenyl", [6]int{3, 3, 4, 3, 4, 3}},
	{"Alpha-ketoglutarate", [6]int{2, 3, 4, 2, 4, 4}},
	{"17α-estradiol", [6]int{4, 3, 4, 1, 3, 3}},
	{"Chloroquine", [6]int{3, 2, 4, 2, 2, 4}},
	{"Stem cell therapy", [6]int{4, 4, 4, 3, 3, 1}},
	{"Gene therapy", [6]int{3, 3, 4, 1, 2, 1}},
	{"Epigenetic reprogramming", [6]int{2, 3, 4, 1, 2, 1}},
	{"Chemical reprogramming", [6]int{2, 2, 4, 1, 2, 2}},
	{"Telomere extension", [6]int{2, 3, 4, 2, 2, 1}},
	{"Exosome therapy", [6]int{2, 2, 3, 2, 3, 2}},
	{"Young blood plasma", [6]int{3, 3, 3, 2, 2, 1}},
	{"Plasma dilution/apheresis", [6]int{3, 3, 4, 3, 3, 2}},
	{"Immunotherapy senolytics", [6]int{1, 2, 4, 1, 2, 1}},
	{"Elamipretide", [6]int{2, 3, 4, 2, 3, 1}},
	{"Proteostasis & Nucleolus", [6]int{1, 3, 5, 1, 2, 2}},
	{"Xenotransplantation", [6]int{2, 2, 3, 2, 1, 1}},
	{"Synthetic organs", [6]int{2, 2, 3, 2, 2, 1}},
}

func main() {
	out := flag.String("out", "Intervention_scores.xlsx", "output workbook path")
	sheet := flag.String("sheet", "Scoring", "sheet name")
	apiURL := flag.String("api", "", "post the dataset to this Ranker API instead of writing a file")
	replicates := flag.Int("replicates", 0, "replicates to request when posting (0 keeps the server default)")
	flag.Parse()

	if *apiURL != "" {
		if err := post(*apiURL, *replicates); err != nil {
			log.Fatalf("post: %v", err)
		}
		return
	}

	if ext := strings.ToLower(filepath.Ext(*out)); ext != ".xlsx" {
		log.Fatalf("output must be an .xlsx file, got %q", ext)
	}
	if err := writeWorkbook(*out, *sheet); err != nil {
		log.Fatalf("write workbook: %v", err)
	}
	fmt.Printf("Wrote %d interventions to %s (sheet %q)\n", len(interventions), *out, *sheet)
}

func rows() [][]string {
	out := make([][]string, len(interventions))
	for i, iv := range interventions {
		row := []string{iv.name}
		for _, s := range iv.scores {
			row = append(row, strconv.Itoa(s))
		}
		out[i] = row
	}
	return out
}

func writeWorkbook(path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, iv := range interventions {
		row := []interface{}{iv.name}
		for _, s := range iv.scores {
			row = append(row, s)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func post(apiURL string, replicates int) error {
	body := map[string]interface{}{
		"name":  "sample-interventions",
		"table": map[string]interface{}{"headers": headers, "rows": rows()},
	}
	if replicates > 0 {
		body["params"] = map[string]int{"replicates": replicates}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := http.Post(strings.TrimRight(apiURL, "/")+"/api/v1/analyses", "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d: %v", resp.StatusCode, result["error"])
	}
	fmt.Printf("Created analysis %v\n", result["analysis_id"])
	return nil
}
