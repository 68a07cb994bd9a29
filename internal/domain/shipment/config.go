package shipment

import (
	"crypto/subtle"
	"time"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// Config is the singleton holding the shared secret for the shipment
// file download API. Initialised once; updated by the admin UI.
type Config struct {
	shared.BaseEntity
	Token string
}

// CheckToken compares a presented token against the stored secret in
// constant time.
func (c *Config) CheckToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(c.Token)) == 1
}

// ParcelhubConfig is the singleton carrier configuration: service
// identifiers and the collection address used for every shipment.
type ParcelhubConfig struct {
	shared.BaseEntity
	ServiceID  string
	CustomerID string
	ProviderID string

	ReadyTime string // "15:04"
	CloseTime string

	CollectionContactName string
	CollectionCompanyName string
	CollectionPhone       string
	CollectionAddress1    string
	CollectionAddress2    string
	CollectionCity        string
	CollectionArea        string
	CollectionPostcode    string
	CollectionCountry     string
	CollectionEmail       string
}

// ParseReadyTime returns the configured ready time as a clock time
func (c *ParcelhubConfig) ParseReadyTime() (time.Time, error) {
	return time.Parse("15:04", c.ReadyTime)
}

// ParseCloseTime returns the configured close time as a clock time
func (c *ParcelhubConfig) ParseCloseTime() (time.Time, error) {
	return time.Parse("15:04", c.CloseTime)
}
