// score_profiles.go scores a CSV of customer profiles against a running churnwatch API.
//
// Usage:
//
//	go run scripts/score_profiles.go -csv customers.csv -api http://localhost:8700 -client batch
//
// The CSV needs a header row. Recognised columns: customer_id, tenure,
// monthly_charges, senior_citizen, contract, internet_service, tech_support.
// Blank cells fall back to the form defaults.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type predictRequest struct {
	Tenure          *int     `json:"tenure,omitempty"`
	MonthlyCharges  *float64 `json:"monthly_charges,omitempty"`
	SeniorCitizen   string   `json:"senior_citizen,omitempty"`
	Contract        string   `json:"contract,omitempty"`
	InternetService string   `json:"internet_service,omitempty"`
	TechSupport     string   `json:"tech_support,omitempty"`
}

type predictResponse struct {
	PredictionID string  `json:"prediction_id"`
	Probability  float64 `json:"probability"`
	Percent      string  `json:"percent"`
	Risk         string  `json:"risk"`
}

type profile struct {
	id  string
	req predictRequest
}

func main() {
	csvPath := flag.String("csv", "customers.csv", "path to CSV of customer profiles")
	apiURL := flag.String("api", "http://localhost:8700", "churnwatch API base URL")
	clientID := flag.String("client", "batch", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print parsed profiles without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	profiles, err := readProfiles(f)
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}
	log.Printf("parsed %d profiles from %s", len(profiles), *csvPath)

	if *dryRun {
		for i, p := range profiles {
			body, _ := json.Marshal(p.req)
			fmt.Printf("[%d] %s %s\n", i+1, p.id, body)
		}
		return
	}

	client := &http.Client{}
	counts := map[string]int{}
	failed := 0
	for _, p := range profiles {
		body, _ := json.Marshal(p.req)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/predict", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %s: %v", p.id, err)
			failed++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %s: %v", p.id, err)
			failed++
			continue
		}
		var out predictResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK || decodeErr != nil {
			log.Printf("skip %s: status %d", p.id, resp.StatusCode)
			failed++
			continue
		}
		counts[out.Risk]++
		fmt.Printf("%s\t%s\t%s\t%s\n", p.id, out.Percent, out.Risk, out.PredictionID)
	}

	log.Printf("done: %d high, %d medium, %d low, %d failed",
		counts["high"], counts["medium"], counts["low"], failed)
}

func readProfiles(r io.Reader) ([]profile, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cell := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var profiles []profile
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		p := profile{id: cell(rec, "customer_id")}
		if p.id == "" {
			p.id = fmt.Sprintf("row-%d", line)
		}
		if v := cell(rec, "tenure"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: tenure %q: %w", line, v, err)
			}
			p.req.Tenure = &n
		}
		if v := cell(rec, "monthly_charges"); v != "" {
			c, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: monthly_charges %q: %w", line, v, err)
			}
			p.req.MonthlyCharges = &c
		}
		p.req.SeniorCitizen = cell(rec, "senior_citizen")
		p.req.Contract = cell(rec, "contract")
		p.req.InternetService = cell(rec, "internet_service")
		p.req.TechSupport = cell(rec, "tech_support")
		profiles = append(profiles, p)
	}
	return profiles, nil
}
