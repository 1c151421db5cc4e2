package user

// User represents a user record in the system.
// Instances held in memory are transient copies; the database owns the
// durable rows.
type User struct {
	ID    int64  `json:"id"`    // ID is assigned once at creation and never reassigned
	Name  string `json:"name"`  // Name is the full name of the user
	Email string `json:"email"` // Email is the unique email address of the user
}
