package employee

import "time"

type Employee struct {
	ID          string
	UserID      string
	FirstName   string
	LastName    string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
	JoinDate    *time.Time
	Designation *string
	Department  *string

	// Bank details
	BankAccountName   *string
	BankAccountNumber *string
	BankName          *string
	BankIFSC          *string

	// Emergency contact
	EmergencyContactName  *string
	EmergencyContactPhone *string

	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	Email     *string
	Role      *string
	AvatarURL *string
}

// FullName returns the employee display name.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
