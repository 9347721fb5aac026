package transform

import (
	"strings"

	"github.com/dmitrijs2005/confsync/internal/models"
)

// Canonical table names, in sync order. Attendees come first so the agenda
// speaker join always sees the current filtered attendee snapshot.
const (
	TableAttendees             = "attendees"
	TableAgendaItems           = "agenda_items"
	TableDiningOptions         = "dining_options"
	TableSponsors              = "sponsors"
	TableHotels                = "hotels"
	TableSeatAssignments       = "seat_assignments"
	TableSeatingConfigurations = "seating_configurations"
)

// SyncOrder lists every known table in the order SyncAll processes them.
func SyncOrder() []string {
	return []string{
		TableAttendees,
		TableAgendaItems,
		TableDiningOptions,
		TableSponsors,
		TableHotels,
		TableSeatAssignments,
		TableSeatingConfigurations,
	}
}

// Spec returns the table spec for name. The bool reports whether the table
// is part of the known set.
func Spec(name string) (TableSpec, bool) {
	s, ok := tables[name]
	return s, ok
}

// AttendeeAllow is the attendee safe-field allowlist: identity, role flags
// and display fields only. Contact details, address, travel/hotel, dietary,
// assistant contact and access codes are excluded by construction.
var AttendeeAllow = []string{
	"id", "salutation", "first_name", "last_name", "display_name",
	"title", "company", "company_normalized", "bio", "photo_url",
	"attendee_type", "registration_status",
	"is_speaker", "is_spouse", "spouse_display_name",
	"is_cfo", "is_apax_ep", "is_apax_oep",
	"primary_attendee_id", "company_id",
	"registered_at", "updated_at",
}

var agendaAllow = []string{
	"id", "title", "description", "session_type", "day",
	"start_time", "end_time", "location", "display_order", "speakers",
}

var diningAllow = []string{
	"id", "name", "description", "day", "start_time", "end_time",
	"location", "layout_template", "has_table_assignments", "tables",
	"display_order",
}

var sponsorAllow = []string{
	"id", "name", "tier", "logo_key", "website", "display_order",
}

var hotelAllow = []string{
	"id", "name", "address", "phone", "website", "distance_to_venue",
	"display_order",
}

var seatAssignmentAllow = []string{
	"id", "attendee_id", "seating_configuration_id", "table_name",
	"seat_number", "assigned_at",
}

var seatingConfigurationAllow = []string{
	"id", "event_id", "event_type", "layout_type", "total_tables",
	"seats_per_table",
}

var tables = map[string]TableSpec{
	TableAttendees: {
		Name:      TableAttendees,
		Transform: transformAttendee,
		Active:    IsActive,
		Allow:     AttendeeAllow,
		Overrides: []Override{
			// a-1797 was imported with a company carried over from another
			// registration; cleared until the source data is fixed.
			{ID: "a-1797", Field: "company", Reason: "erroneously assigned affiliation in source import"},
		},
	},
	TableAgendaItems: {
		Name:      TableAgendaItems,
		Transform: transformAgendaItem,
		Enrich:    enrichAgendaSpeakers,
		Active:    IsActive,
		Allow:     agendaAllow,
	},
	TableDiningOptions: {
		Name:      TableDiningOptions,
		Transform: transformDiningOption,
		Active:    IsActive,
		Allow:     diningAllow,
	},
	TableSponsors: {
		Name:      TableSponsors,
		Transform: transformSponsor,
		Active:    IsActive,
		Allow:     sponsorAllow,
	},
	TableHotels: {
		Name:      TableHotels,
		Transform: transformHotel,
		Active:    IsActive,
		Allow:     hotelAllow,
	},
	TableSeatAssignments: {
		Name:      TableSeatAssignments,
		Transform: transformSeatAssignment,
		Active:    IsActive,
		Allow:     seatAssignmentAllow,
	},
	TableSeatingConfigurations: {
		Name:      TableSeatingConfigurations,
		Transform: transformSeatingConfiguration,
		Active:    IsActive,
		Allow:     seatingConfigurationAllow,
	},
}

// BuildSpeakerLookup indexes an already-filtered attendee snapshot by ID.
func BuildSpeakerLookup(attendees []models.Record) SpeakerLookup {
	idx := make(map[string]models.SpeakerRef, len(attendees))
	for _, a := range attendees {
		id := a.String("id")
		if id == "" {
			continue
		}
		idx[id] = models.SpeakerRef{
			ID:          id,
			DisplayName: a.String("display_name"),
			Title:       a.String("title"),
			Company:     a.String("company"),
			PhotoURL:    a.String("photo_url"),
		}
	}
	return func(id string) (models.SpeakerRef, bool) {
		ref, ok := idx[id]
		return ref, ok
	}
}

func transformAttendee(raw models.Record) models.Record {
	r := raw.Clone()
	first := raw.String("first_name")
	last := raw.String("last_name")

	r["id"] = raw.String("id")
	r["salutation"] = raw.String("salutation")
	r["first_name"] = first
	r["last_name"] = last
	r["display_name"] = displayName(first, last)
	r["title"] = raw.String("title")
	r["company"] = raw.String("company")
	r["company_normalized"] = firstNonEmpty(raw.String("company_name_standardized"), raw.String("company"))
	r["bio"] = raw.String("bio")
	r["photo_url"] = firstNonEmpty(raw.String("photo"), raw.String("photo_url"))
	r["attendee_type"] = raw.String("attendee_type")
	r["registration_status"] = raw.String("registration_status")
	r["is_speaker"] = raw.Bool("is_speaker", false)
	r["is_spouse"] = raw.Bool("is_spouse", false)
	r["spouse_display_name"] = raw.String("spouse_display_name")
	r["is_cfo"] = raw.Bool("is_cfo", false)
	r["is_apax_ep"] = raw.Bool("is_apax_ep", false)
	r["is_apax_oep"] = raw.Bool("is_apax_oep", false)
	r["primary_attendee_id"] = raw.String("primary_attendee_id")
	r["company_id"] = raw.String("company_id")
	r["registered_at"] = firstNonEmpty(raw.String("created_at"), raw.String("registered_at"))
	r["updated_at"] = raw.String("updated_at")
	return r
}

func transformAgendaItem(raw models.Record) models.Record {
	r := raw.Clone()
	r["id"] = raw.String("id")
	r["title"] = raw.String("title")
	r["description"] = raw.String("description")
	r["session_type"] = raw.String("session_type")
	r["day"] = raw.String("day")
	r["start_time"] = raw.String("start_time")
	r["end_time"] = raw.String("end_time")
	r["location"] = raw.String("location")
	r["display_order"] = intVal(raw, "display_order")
	return r
}

// enrichAgendaSpeakers resolves each item's speaker_ids against the filtered
// attendee snapshot. Unknown IDs produce a ref with only the ID set, never a
// silently shorter list, so the UI can still render a placeholder.
func enrichAgendaSpeakers(rows []models.Record, speakers SpeakerLookup) {
	for _, row := range rows {
		ids := stringSlice(row["speaker_ids"])
		refs := make([]models.SpeakerRef, 0, len(ids))
		for _, id := range ids {
			if speakers != nil {
				if ref, ok := speakers(id); ok {
					refs = append(refs, ref)
					continue
				}
			}
			refs = append(refs, models.SpeakerRef{ID: id})
		}
		row["speakers"] = refs
	}
}

func transformDiningOption(raw models.Record) models.Record {
	r := raw.Clone()
	r["id"] = raw.String("id")
	r["name"] = raw.String("name")
	r["description"] = raw.String("description")
	r["day"] = raw.String("day")
	r["start_time"] = raw.String("start_time")
	r["end_time"] = raw.String("end_time")
	r["location"] = raw.String("location")
	r["layout_template"] = raw.String("layout_template")
	r["has_table_assignments"] = raw.Bool("has_table_assignments", false)
	r["tables"] = diningTables(raw["tables"])
	r["display_order"] = intVal(raw, "display_order")
	return r
}

func transformSponsor(raw models.Record) models.Record {
	r := raw.Clone()
	r["id"] = raw.String("id")
	r["name"] = raw.String("name")
	r["tier"] = raw.String("tier")
	r["logo_key"] = firstNonEmpty(raw.String("logo"), raw.String("logo_key"))
	r["website"] = raw.String("website")
	r["display_order"] = intVal(raw, "display_order")
	return r
}

func transformHotel(raw models.Record) models.Record {
	r := raw.Clone()
	r["id"] = raw.String("id")
	r["name"] = raw.String("name")
	r["address"] = raw.String("address")
	r["phone"] = raw.String("phone")
	r["website"] = raw.String("website")
	r["distance_to_venue"] = raw.String("distance_to_venue")
	r["display_order"] = intVal(raw, "display_order")
	return r
}

func transformSeatAssignment(raw models.Record) models.Record {
	r := raw.Clone()
	r["id"] = raw.String("id")
	r["attendee_id"] = raw.String("attendee_id")
	r["seating_configuration_id"] = raw.String("seating_configuration_id")
	r["table_name"] = raw.String("table_name")
	r["seat_number"] = intVal(raw, "seat_number")
	r["assigned_at"] = raw.String("assigned_at")
	return r
}

func transformSeatingConfiguration(raw models.Record) models.Record {
	r := raw.Clone()
	r["id"] = raw.String("id")
	r["event_id"] = raw.String("event_id")
	r["event_type"] = raw.String("event_type")
	r["layout_type"] = raw.String("layout_type")
	r["total_tables"] = intVal(raw, "total_tables")
	r["seats_per_table"] = intVal(raw, "seats_per_table")
	return r
}

func displayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// intVal reads an integer field. JSON decoding yields float64 for numbers,
// so both are accepted; anything else maps to 0.
func intVal(r models.Record, key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// stringSlice normalizes a raw JSON array field into []string, skipping
// non-string elements.
func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// diningTables normalizes a raw table-layout array into DiningTable values.
func diningTables(v any) []models.DiningTable {
	items, ok := v.([]any)
	if !ok {
		return []models.DiningTable{}
	}
	out := make([]models.DiningTable, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := models.DiningTable{Name: models.Record(m).String("name")}
		t.Capacity = intVal(models.Record(m), "capacity")
		out = append(out, t)
	}
	return out
}
