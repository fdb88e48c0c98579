package trip

import "time"

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type Trip struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Name            string     `json:"name"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Notes           string     `json:"notes"`
	CityIDs         []string   `json:"city_ids"`
	InviteCode      *string    `json:"invite_code,omitempty"`
	InviteExpiresAt *time.Time `json:"invite_expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// DayCount is the inclusive number of days the trip spans.
func (t Trip) DayCount() int { return DayCount(t.StartDate, t.EndDate) }

type DayPlan struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	DayNumber int       `json:"day_number"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

type Member struct {
	TripID      string    `json:"trip_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
}

// CreateTripInput carries dates as YYYY-MM-DD.
type CreateTripInput struct {
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Notes     string   `json:"notes"`
	CityIDs   []string `json:"city_ids"`
}

// TripPatch updates the non-nil fields. Dates are fixed once the day plans
// exist.
type TripPatch struct {
	Name    *string   `json:"name"`
	Notes   *string   `json:"notes"`
	CityIDs *[]string `json:"city_ids"`
}

type Invite struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Preview is what a holder of an invite code sees before joining.
type Preview struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CityIDs     []string  `json:"city_ids"`
	Notes       string    `json:"notes"`
	Owner       Owner     `json:"owner"`
	MemberCount int       `json:"member_count"`
}

type Owner struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}
