package store

import (
	"github.com/MKhiriev/report-buddy/internal/logger"
)

// Storages groups every repository backed by one database connection.
type Storages struct {
	Users     UserRepository
	Reports   ReportRepository
	Styles    StyleRepository
	Legal     LegalRepository
	CourtPrep CourtPrepRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Users:     NewUserRepository(db, log),
		Reports:   NewReportRepository(db, log),
		Styles:    NewStyleRepository(db, log),
		Legal:     NewLegalRepository(db, log),
		CourtPrep: NewCourtPrepRepository(db, log),
	}
}
