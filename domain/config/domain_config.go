package config

// DomainConfig holds tunable domain limits.
// Defaults are safe for the single-table store backing the catalog.
type DomainConfig struct {
	MaxNameLength       int
	MaxInstructorLength int

	// MaxSeatsPerOffering bounds offering capacity so that the allotment
	// decision, which finalizes both copies of every registration plus the
	// course record in one atomic write (2N+1 items for N registrations),
	// stays within the store's 100-item transaction limit.
	MaxSeatsPerOffering int

	// AllowPastStartDate permits offerings that start in the past.
	// Only ever enabled by tests that replay historical data.
	AllowPastStartDate bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNameLength:       120,
		MaxInstructorLength: 120,
		MaxSeatsPerOffering: 49,
		AllowPastStartDate:  false,
	}
}
