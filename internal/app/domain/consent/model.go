// Package consent holds research consent records.
package consent

import "time"

// Details enumerates the individual consent checkboxes.
type Details struct {
	ResearchParticipation bool `json:"research_participation"`
	DataCollection        bool `json:"data_collection"`
	DataSharing           bool `json:"data_sharing"`
	ContactPermission     bool `json:"contact_permission"`
}

// Consent is a persisted consent form submission. UserID is the participant
// record number; OwnerUID is the verified identity that submitted the form
// and is the only identity allowed to modify it.
type Consent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	OwnerUID  string    `json:"owner_uid"`
	Given     bool      `json:"consent_given"`
	Details   Details   `json:"consent_details"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
