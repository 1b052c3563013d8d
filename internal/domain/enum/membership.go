package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MembershipRole represents a user's role within a shop
type MembershipRole int

const (
	MembershipRoleEmployee MembershipRole = 0
	MembershipRoleOwner    MembershipRole = 1
)

func (r MembershipRole) String() string {
	return [...]string{"employee", "owner"}[r]
}

func (r MembershipRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *MembershipRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = MembershipRole(i)
		return nil
	}
	switch str {
	case "employee":
		*r = MembershipRoleEmployee
	case "owner":
		*r = MembershipRoleOwner
	}
	return nil
}

func (r MembershipRole) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *MembershipRole) Scan(value interface{}) error {
	if value == nil {
		*r = MembershipRoleEmployee
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = MembershipRole(v)
	case int:
		*r = MembershipRole(v)
	}
	return nil
}

// MembershipStatus represents the approval state of a shop membership
type MembershipStatus int

const (
	MembershipStatusPending  MembershipStatus = 0
	MembershipStatusApproved MembershipStatus = 1
	MembershipStatusRejected MembershipStatus = 2
)

func (s MembershipStatus) String() string {
	return [...]string{"pending", "approved", "rejected"}[s]
}

func (s MembershipStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *MembershipStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = MembershipStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = MembershipStatusPending
	case "approved":
		*s = MembershipStatusApproved
	case "rejected":
		*s = MembershipStatusRejected
	}
	return nil
}

func (s MembershipStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *MembershipStatus) Scan(value interface{}) error {
	if value == nil {
		*s = MembershipStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = MembershipStatus(v)
	case int:
		*s = MembershipStatus(v)
	}
	return nil
}

// ParseMembershipStatus parses a status string from query parameters
func ParseMembershipStatus(s string) (MembershipStatus, error) {
	switch s {
	case "pending":
		return MembershipStatusPending, nil
	case "approved":
		return MembershipStatusApproved, nil
	case "rejected":
		return MembershipStatusRejected, nil
	}
	return 0, fmt.Errorf("unknown membership status %q", s)
}
