package common

import (
	json "github.com/goccy/go-json"
)

// A wrong-typed field falls back to its default instead of failing the whole
// record. Only a value that is not an object at all is rejected.

func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// decodeField sets dst only when fields[key] decodes cleanly
func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// decodeRecordFields decodes a record one top-level field at a time
func decodeRecordFields(data []byte) (*AnalysisRecord, error) {
	fields, err := objectFields(data)
	if err != nil {
		return nil, err
	}

	var r AnalysisRecord
	decodeField(fields, "id", &r.ID)
	decodeField(fields, "username", &r.Username)
	decodeField(fields, "type", &r.Type)
	decodeField(fields, "timestamp", &r.Timestamp)
	decodeField(fields, "total_analysis_time", &r.TotalAnalysisTime)
	decodeField(fields, "video_info", &r.VideoInfo)
	decodeField(fields, "brand_analysis", &r.BrandAnalysis)
	decodeField(fields, "analysis_settings", &r.AnalysisSettings)
	decodeField(fields, "statistics", &r.Statistics)
	return &r, nil
}

// UnmarshalJSON decodes video_info, keeping every field that has the right type
func (v *VideoInfo) UnmarshalJSON(data []byte) error {
	type plain VideoInfo
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*v = VideoInfo(p)
		return nil
	}

	fields, err := objectFields(data)
	if err != nil {
		return err
	}

	*v = VideoInfo{}
	decodeField(fields, "duration", &v.Duration)
	decodeField(fields, "fps", &v.FPS)
	decodeField(fields, "frame_count", &v.FrameCount)
	decodeField(fields, "width", &v.Width)
	decodeField(fields, "height", &v.Height)
	decodeField(fields, "file_size", &v.FileSize)
	decodeField(fields, "format", &v.Format)
	decodeField(fields, "title", &v.Title)
	decodeField(fields, "url", &v.URL)
	return nil
}

// UnmarshalJSON decodes one brand's detections, keeping every field that has the right type
func (d *BrandDetection) UnmarshalJSON(data []byte) error {
	type plain BrandDetection
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*d = BrandDetection(p)
		return nil
	}

	fields, err := objectFields(data)
	if err != nil {
		return err
	}

	*d = BrandDetection{}
	decodeField(fields, "appearances", &d.Appearances)
	decodeField(fields, "total_seconds", &d.TotalSeconds)
	decodeField(fields, "average_confidence", &d.AverageConfidence)
	decodeField(fields, "max_confidence", &d.MaxConfidence)
	decodeField(fields, "timestamps", &d.Timestamps)
	decodeField(fields, "confidence_scores", &d.ConfidenceScores)
	decodeField(fields, "detections", &d.Detections)
	return nil
}
