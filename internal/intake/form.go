// Package intake implements the multi-step client booking flow: an ordered,
// resumable sequence of data-collection steps over a single form record,
// with per-step validation gating and durable progress persistence.
package intake

// DocumentRef is the metadata left behind after a document upload; the
// binary itself lives in object storage (see internal/documents).
type DocumentRef struct {
	ServiceID   string `json:"service_id"`
	FileName    string `json:"file_name"`
	StorageKey  string `json:"storage_key"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

// FormState accumulates everything the client enters across the flow.
// Emptiness is the only "unset" signal: there are no null/absent markers
// beyond empty strings and empty slices.
type FormState struct {
	ServiceIDs []string      `json:"service_ids"`
	Documents  []DocumentRef `json:"documents"`

	AppointmentDate string `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `json:"appointment_time"` // HH:MM, 24-hour
	Timezone        string `json:"timezone"`         // UTC offset label

	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`

	// Account-creation credentials, collected only for unauthenticated
	// sessions. Never persisted past submission.
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`

	Notes string `json:"notes"`
}

// DocumentsForService returns the uploaded documents attached to one service.
func (f FormState) DocumentsForService(serviceID string) []DocumentRef {
	var out []DocumentRef
	for _, d := range f.Documents {
		if d.ServiceID == serviceID {
			out = append(out, d)
		}
	}
	return out
}

// HasServiceSelected reports whether the given service id is selected.
func (f FormState) HasServiceSelected(serviceID string) bool {
	for _, id := range f.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
