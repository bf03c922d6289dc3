package usagestats

import "time"

// Operation identifies one tracked API operation.
type Operation string

const (
	OpListWellIDs    Operation = "GetAllWellId"
	OpListMetaInfo   Operation = "GetAllWellMetaInfo"
	OpGetWellByID    Operation = "GetWellById"
	OpListWells      Operation = "GetAllWell"
	OpAddWell        Operation = "PostWell"
	OpUpdateWellByID Operation = "PutWellById"
	OpDeleteWellByID Operation = "DeleteWellById"
)

// CountPerDay is one day-bucket of calls.
type CountPerDay struct {
	Date  time.Time `json:"date"`
	Count uint64    `json:"count"`
}

// History is an append-only sequence of day buckets, strictly increasing in
// date. The last entry is the current day.
type History struct {
	Data []CountPerDay `json:"data"`
}

// Increment counts one call at the given instant. A new bucket is appended
// when the UTC calendar day has rolled over since the last entry.
func (h *History) Increment(now time.Time) {
	day := now.UTC().Truncate(24 * time.Hour)
	if n := len(h.Data); n == 0 || h.Data[n-1].Date.Before(day) {
		h.Data = append(h.Data, CountPerDay{Date: day, Count: 1})
		return
	}
	h.Data[len(h.Data)-1].Count++
}

func (h History) clone() History {
	if h.Data == nil {
		return History{}
	}
	data := make([]CountPerDay, len(h.Data))
	copy(data, h.Data)
	return History{Data: data}
}

// Snapshot is the full serialized counter state: one history per tracked
// operation plus the persistence bookkeeping.
type Snapshot struct {
	LastSaved      time.Time     `json:"lastSaved"`
	BackupInterval time.Duration `json:"backupInterval"`

	ListWellIDs    History `json:"getAllWellIdPerDay"`
	ListMetaInfo   History `json:"getAllWellMetaInfoPerDay"`
	GetWellByID    History `json:"getWellByIdPerDay"`
	ListWells      History `json:"getAllWellPerDay"`
	AddWell        History `json:"postWellPerDay"`
	UpdateWellByID History `json:"putWellByIdPerDay"`
	DeleteWellByID History `json:"deleteWellByIdPerDay"`
}

func (s *Snapshot) history(op Operation) *History {
	switch op {
	case OpListWellIDs:
		return &s.ListWellIDs
	case OpListMetaInfo:
		return &s.ListMetaInfo
	case OpGetWellByID:
		return &s.GetWellByID
	case OpListWells:
		return &s.ListWells
	case OpAddWell:
		return &s.AddWell
	case OpUpdateWellByID:
		return &s.UpdateWellByID
	case OpDeleteWellByID:
		return &s.DeleteWellByID
	default:
		return nil
	}
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.ListWellIDs = s.ListWellIDs.clone()
	out.ListMetaInfo = s.ListMetaInfo.clone()
	out.GetWellByID = s.GetWellByID.clone()
	out.ListWells = s.ListWells.clone()
	out.AddWell = s.AddWell.clone()
	out.UpdateWellByID = s.UpdateWellByID.clone()
	out.DeleteWellByID = s.DeleteWellByID.clone()
	return out
}
