package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# BrandSum configuration
version: "1.0"

# Where analysis records come from. Commands read the history file unless
# --db is given, in which case the SQLite store is used.
source:
  history_file: analysis_history.json
  database: ~/.local/share/brandsum/brandsum.sqlite3
  # Only aggregate records created by this user (empty = everyone)
  owner: ""
  page_size: 50
  # Analyses kept in the store; 0 keeps everything
  retention: 100

output:
  # text | json | markdown | csv | prompt
  default_format: text
  # auto | always | never
  color_mode: auto
  verbose: false
  timestamp_format: "2006-01-02 15:04:05"
  compact_mode: false
  emoji: true
  # Ranked brands shown in reports; 0 shows all
  top: 10

analysis:
  # overlap: detections within half a bucket of a bucket's start count there,
  #          so a detection on a boundary counts in both neighbours
  # nearest: each detection counts in exactly one bucket
  timeline_mode: overlap
  # both | average | detections
  confidence_sources: both
  bucket_seconds: 5
  # Timeline score for a detection with no score and no brand average
  default_confidence: 0.8
  # appearances | exposure | confidence | videos
  rank_by: appearances
  timeout: 30s
`
}

// MinimalSampleConfig returns a configuration with only the common settings
func MinimalSampleConfig() string {
	return `version: "1.0"
source:
  history_file: analysis_history.json
output:
  default_format: text
analysis:
  timeline_mode: overlap
  confidence_sources: both
`
}
