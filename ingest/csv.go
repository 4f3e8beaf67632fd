package ingest

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ReadCSVDir reads every .csv file under dir into RawRecords. Files are
// parsed concurrently by up to workers goroutines; results are merged
// in filename order so downstream processing stays deterministic.
// Rows outside the rail route types are dropped; malformed rows are
// skipped and counted, never fatal.
func ReadCSVDir(dir string, workers int) ([]RawRecord, ParseStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("read data dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	if workers < 1 {
		workers = 1
	}

	perFile := make([][]RawRecord, len(files))
	perStats := make([]ParseStats, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				recs, st, err := readCSVFile(files[i])
				if err != nil {
					log.Printf("WARNING: skipping %s: %v", files[i], err)
					continue
				}
				perFile[i] = recs
				perStats[i] = st
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var out []RawRecord
	var stats ParseStats
	for i := range files {
		out = append(out, perFile[i]...)
		stats.Merge(perStats[i])
	}
	return out, stats, nil
}

func readCSVFile(path string) ([]RawRecord, ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("parse csv: %w", err)
	}
	stats := ParseStats{Files: 1}
	if len(rows) == 0 {
		return nil, stats, nil
	}

	head := rows[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	colAlertID := idx("alert_id")
	colRouteID := idx("route_id")
	colRouteType := idx("route_type")
	colCause := idx("cause")
	colCauseDetail := idx("cause_detail")
	colEffect := idx("effect")
	colEffectDetail := idx("effect_detail")
	colSeverity := idx("severity_level")
	colStart := idx("active_period_start_dt")
	colEnd := idx("active_period_end_dt")
	colStartDate := idx("active_period_start_date")
	colModified := idx("last_modified_dt")

	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		stats.Rows++
		rt := field(row, colRouteType)
		if !IsRailRouteType(rt) {
			stats.SkippedNonRail++
			continue
		}
		rec := RawRecord{
			AlertID:      field(row, colAlertID),
			RouteID:      field(row, colRouteID),
			RouteType:    rt,
			Cause:        field(row, colCause),
			CauseDetail:  field(row, colCauseDetail),
			Effect:       field(row, colEffect),
			EffectDetail: field(row, colEffectDetail),
			Severity:     field(row, colSeverity),
			Start:        field(row, colStart),
			End:          field(row, colEnd),
			StartDate:    field(row, colStartDate),
			LastModified: field(row, colModified),
		}
		if rec.AlertID == "" {
			stats.Malformed++
			continue
		}
		if _, ok := ParseTimestamp(rec.Start); !ok {
			stats.Malformed++
			continue
		}
		records = append(records, rec)
	}
	return records, stats, nil
}
