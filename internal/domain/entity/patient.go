package entity

import "time"

// Patient is a clinic patient record. AccountID optionally links the
// record to a Patient-role login; records created at the front desk
// usually have no linked account.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"` // Male, Female, Other
	Contact   string    `json:"contact"`
	AccountID string    `json:"account_id,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
