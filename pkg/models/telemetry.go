package models

// Reading is one parsed telemetry frame.
type Reading struct {
	TX          Setting `json:"tx"`
	RX          Setting `json:"rx"`
	RC2M        Setting `json:"rc_2m"`
	AvgFO       int     `json:"avg_fo"`       // average frequency offset
	AvgIF       int     `json:"avg_if"`       // average intermediate frequency count
	AvgCount2M  int     `json:"avg_count_2m"` // average 2M RC count
	Temperature float64 `json:"temperature"`  // degrees C
}

// Snapshot is a read-only copy of a telemetry session used to drive a redraw.
// Every slice has the same length.
type Snapshot struct {
	SessionID string

	Elapsed []float64 // seconds since session start

	TX   []int // encoded settings
	RX   []int
	RC2M []int

	RawTX   []Setting
	RawRX   []Setting
	RawRC2M []Setting

	AvgFO       []int
	AvgIF       []int
	AvgCount2M  []int
	Temperature []float64
}

// Len returns the number of readings in the snapshot.
func (s Snapshot) Len() int { return len(s.Elapsed) }

// PDRRow is a (setting, packets received) pair extracted from a receiver log.
type PDRRow struct {
	Setting string `json:"setting" doc:"Dotted coarse.mid.fine setting"`
	PDR     string `json:"pdr" doc:"Packets received at this setting"`
}

// PDRTable is the extraction result for a single receiver log.
type PDRTable struct {
	Source string   `json:"source" doc:"Receiver log the rows were extracted from"`
	Rows   []PDRRow `json:"rows"`
}
