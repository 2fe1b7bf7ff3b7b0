package staff

import (
	"strings"
	"time"
	"unicode"
)

type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleCoach Role = "coach"
)

// Priority задаёт полный порядок ролей: owner > admin > coach.
func (r Role) Priority() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleCoach:
		return 1
	default:
		return 0
	}
}

// ParseRole — роль из строки бэкенда; незнакомые значения считаем тренером.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleCoach:
		return Role(s)
	default:
		return RoleCoach
	}
}

type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
)

type Origin string

const (
	OriginMembership Origin = "membership"
	OriginInvitation Origin = "invitation"
)

// ClubRoleState — роль сотрудника в одном клубе. На пару (сотрудник, клуб)
// всегда не больше одной записи. InvitationID заполнен только у записей,
// пришедших из приглашения: он нужен, чтобы приглашение потом отменить.
type ClubRoleState struct {
	ClubID       int64
	Role         Role
	Status       Status
	Origin       Origin
	InvitationID *int64
}

// Employee — агрегат ростера: один человек на один identity key.
type Employee struct {
	IdentityKey  string
	UserID       int64 // id membership-записи; 0 у "призраков"
	FirstName    string
	LastName     string
	Phone        string
	Username     *string
	PhotoURL     *string
	PrimaryRole  Role
	ClubIDs      []int64
	ClubRoles    []ClubRoleState
	Status       Status
	InvitationID *int64
	CreatedAt    time.Time
}

// Ghost — запись, существующая только из-за непринятого приглашения:
// membership-данных по этому телефону ещё нет.
func (e *Employee) Ghost() bool {
	return e.FirstName == "" && e.LastName == "" && e.Status == StatusPending
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// RoleIn возвращает состояние роли в конкретном клубе.
func (e *Employee) RoleIn(clubID int64) (ClubRoleState, bool) {
	for _, cr := range e.ClubRoles {
		if cr.ClubID == clubID {
			return cr, true
		}
	}
	return ClubRoleState{}, false
}

func (e *Employee) hasClub(clubID int64) bool {
	for _, id := range e.ClubIDs {
		if id == clubID {
			return true
		}
	}
	return false
}

// IdentityKey — ключ сравнения по телефону: убираем все пробельные символы.
// Префиксы вида +7 и 8 сознательно НЕ приводятся друг к другу: даунстрим
// завязан на узкое равенство.
func IdentityKey(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}
