package models

// Typed views over cached records. Field names match the canonical names
// produced by the transform pipeline, so a cached record decodes directly
// into its entity struct. Every entity exposes only allowlisted fields.

// Attendee is the filtered, display-safe view of a conference attendee.
// Contact, travel, dietary and assistant details never reach this shape.
type Attendee struct {
	ID                 string `json:"id"`
	Salutation         string `json:"salutation"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	DisplayName        string `json:"display_name"`
	Title              string `json:"title"`
	Company            string `json:"company"`
	CompanyNormalized  string `json:"company_normalized"`
	Bio                string `json:"bio"`
	PhotoURL           string `json:"photo_url"`
	AttendeeType       string `json:"attendee_type"`
	RegistrationStatus string `json:"registration_status"`
	IsSpeaker          bool   `json:"is_speaker"`
	IsSpouse           bool   `json:"is_spouse"`
	SpouseDisplayName  string `json:"spouse_display_name"`
	IsCFO              bool   `json:"is_cfo"`
	IsApaxEP           bool   `json:"is_apax_ep"`
	IsApaxOEP          bool   `json:"is_apax_oep"`
	PrimaryAttendeeID  string `json:"primary_attendee_id"`
	CompanyID          string `json:"company_id"`
	RegisteredAt       string `json:"registered_at"`
	UpdatedAt          string `json:"updated_at"`
}

// SpeakerRef is the denormalized speaker info embedded into agenda items at
// transform time, built from the already-filtered attendee snapshot.
type SpeakerRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	PhotoURL    string `json:"photo_url"`
}

type AgendaItem struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	SessionType  string       `json:"session_type"`
	Day          string       `json:"day"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	Location     string       `json:"location"`
	DisplayOrder int          `json:"display_order"`
	Speakers     []SpeakerRef `json:"speakers"`
}

type DiningTable struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type DiningOption struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Day                 string        `json:"day"`
	StartTime           string        `json:"start_time"`
	EndTime             string        `json:"end_time"`
	Location            string        `json:"location"`
	LayoutTemplate      string        `json:"layout_template"`
	HasTableAssignments bool          `json:"has_table_assignments"`
	Tables              []DiningTable `json:"tables"`
	DisplayOrder        int           `json:"display_order"`
}

type Sponsor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Tier         string `json:"tier"`
	LogoKey      string `json:"logo_key"`
	Website      string `json:"website"`
	DisplayOrder int    `json:"display_order"`
}

type Hotel struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Website         string `json:"website"`
	DistanceToVenue string `json:"distance_to_venue"`
	DisplayOrder    int    `json:"display_order"`
}

type SeatAssignment struct {
	ID                     string `json:"id"`
	AttendeeID             string `json:"attendee_id"`
	SeatingConfigurationID string `json:"seating_configuration_id"`
	TableName              string `json:"table_name"`
	SeatNumber             int    `json:"seat_number"`
	AssignedAt             string `json:"assigned_at"`
}

type SeatingConfiguration struct {
	ID            string `json:"id"`
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	LayoutType    string `json:"layout_type"`
	TotalTables   int    `json:"total_tables"`
	SeatsPerTable int    `json:"seats_per_table"`
}

// SeatDetail is the read-time join of a seat assignment with its seating
// configuration. Configuration is nil when the bridge lookup finds no
// matching configuration in the cache.
type SeatDetail struct {
	Assignment    SeatAssignment        `json:"assignment"`
	Configuration *SeatingConfiguration `json:"configuration"`
}
