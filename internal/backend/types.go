package backend

import "time"

// Типизированные контракты удалённого REST-бэкенда. Все необязательные поля —
// указатели, открытых map в ответах нет.

type ClubRole struct {
	ClubID   int64  `json:"club_id"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Member — подтверждённый сотрудник из team-membership эндпоинта.
type Member struct {
	ID            int64      `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	PhoneNumber   string     `json:"phone_number"`
	Username      *string    `json:"username,omitempty"`
	PhotoURL      *string    `json:"photo_url,omitempty"`
	ClubsAndRoles []ClubRole `json:"clubs_and_roles"`
	CreatedAt     time.Time  `json:"created_at"`
}

const InvitationPending = "pending"

// Invitation — приглашение в конкретный клуб. IsUsed выставляется бэкендом,
// когда приглашение принято и превратилось в membership.
type Invitation struct {
	ID          int64     `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	ClubID      int64     `json:"club_id"`
	Status      string    `json:"status"`
	IsUsed      bool      `json:"is_used"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i Invitation) Pending() bool {
	return i.Status == InvitationPending && !i.IsUsed
}

type Club struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ClubWithRole — клуб, видимый текущему пользователю, и его роль в нём.
// IsOwner дублирует role == owner на части записей и учитывается отдельно.
type ClubWithRole struct {
	Club    Club   `json:"club"`
	Role    string `json:"role"`
	IsOwner bool   `json:"is_owner"`
}

type Group struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Level    *string `json:"level,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

type Section struct {
	ID     int64   `json:"id"`
	ClubID int64   `json:"club_id"`
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

type CreateInvitationRequest struct {
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

type CreateSectionRequest struct {
	ClubID int64  `json:"club_id"`
	Name   string `json:"name"`
}

type CreateGroupRequest struct {
	Name     string  `json:"name"`
	Level    *string `json:"level,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

type GenerateLessonsRequest struct {
	WeeklyPattern map[string][]Slot `json:"weekly_pattern"`
	ValidFrom     string            `json:"valid_from"`
	ValidUntil    string            `json:"valid_until"`
}

type Slot struct {
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

type CreateTariffRequest struct {
	Name        string            `json:"name"`
	Price       int               `json:"price"`
	PackageType string            `json:"package_type"`
	ClubIDs     []int64           `json:"club_ids"`
	SectionIDs  []int64           `json:"section_ids"`
	GroupIDs    []int64           `json:"group_ids"`
	ValidFrom   string            `json:"valid_from"`
	ValidUntil  string            `json:"valid_until"`
	Schedule    map[string][]Slot `json:"schedule,omitempty"`
}
