package domain

import "time"

// Token represents issued authentication token metadata.
type Token struct {
	Value     string
	Subject   string
	Role      Role
	ExpiresAt time.Time
}
