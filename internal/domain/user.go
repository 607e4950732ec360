package domain

// UserKind selects the product line an account belongs to.
type UserKind string

const (
	UserKindRental UserKind = "rental"
	UserKindTaxi   UserKind = "taxi"
)

// Valid reports whether the kind is known to the Flo API.
func (k UserKind) Valid() bool {
	return k == UserKindRental || k == UserKindTaxi
}

// Resource is the query cache namespace used for lists of this kind.
func (k UserKind) Resource() string {
	if k == UserKindTaxi {
		return "billings"
	}
	return "customers"
}

// ParseUserKind maps a path segment to a kind. "billing" is accepted as an
// alias for taxi accounts.
func ParseUserKind(raw string) (UserKind, bool) {
	switch raw {
	case "rental", "customers":
		return UserKindRental, true
	case "taxi", "billing", "billings":
		return UserKindTaxi, true
	}
	return "", false
}

// UserStatus is the account state reported by the Flo API.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Document is an uploaded identity document.
type Document struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

// User mirrors a rental or taxi account record. Taxi (billing) records share
// the rental shape; fields the API omits stay zero.
type User struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id,omitempty"`
	Name        string     `json:"name"`
	FirstName   string     `json:"first_name,omitempty"`
	MiddleName  *string    `json:"middle_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Gender      string     `json:"gender,omitempty"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	Address     string     `json:"address,omitempty"`
	Location    string     `json:"location,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	License     string     `json:"license,omitempty"`
	Rating      FlexString `json:"rating,omitempty"`
	Status      UserStatus `json:"status"`
	TotalRides  FlexInt    `json:"totalRides"`
	Documents   []Document `json:"documents,omitempty"`
}

// RecentlyJoinedUser is an entry of the dashboard's newest accounts widget.
type RecentlyJoinedUser struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	JoinedAt  string `json:"joinedAt"`
}
