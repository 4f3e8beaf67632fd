package ingest

// Deduplicate collapses all snapshot rows sharing an alert id into the
// single winning row, the one with the latest last-modified timestamp.
// The whole row is carried alongside the timestamp so every field of
// the winner comes from the same snapshot; ties keep the first row
// seen. The caller must feed rows from every source before using the
// result, since a later file can supply a newer winner for an alert
// first observed in an earlier file.
func Deduplicate(records []RawRecord) map[string]RawRecord {
	winners := make(map[string]RawRecord)
	for _, rec := range records {
		cur, seen := winners[rec.AlertID]
		if !seen || rec.LastModified > cur.LastModified {
			winners[rec.AlertID] = rec
		}
	}
	return winners
}
