package domain

import (
	"time"

	"github.com/google/uuid"
)

// MetaInfo is the audit and identity envelope embedded in every record.
// The ID is the record's stable identifier; the remaining fields describe
// where the record is served from and are carried opaquely.
type MetaInfo struct {
	ID               uuid.UUID `json:"id"`
	HTTPHostName     string    `json:"httpHostName,omitempty"`
	HTTPHostBasePath string    `json:"httpHostBasePath,omitempty"`
	HTTPEndPoint     string    `json:"httpEndPoint,omitempty"`
}

// Well is one drilling-well entity stored by the service.
type Well struct {
	MetaInfo             *MetaInfo  `json:"metaInfo"`
	Name                 string     `json:"name,omitempty"`
	Description          string     `json:"description,omitempty"`
	CreationDate         *time.Time `json:"creationDate,omitempty"`
	LastModificationDate *time.Time `json:"lastModificationDate,omitempty"`
	SlotID               *uuid.UUID `json:"slotId,omitempty"`
	ClusterID            *uuid.UUID `json:"clusterId,omitempty"`
	// IsSingleWell is true when the well does not really belong to a
	// cluster and the cluster is just a proxy.
	IsSingleWell bool `json:"isSingleWell"`
}

// ID returns the record identifier, or uuid.Nil when the envelope is missing.
func (w *Well) ID() uuid.UUID {
	if w == nil || w.MetaInfo == nil {
		return uuid.Nil
	}
	return w.MetaInfo.ID
}
